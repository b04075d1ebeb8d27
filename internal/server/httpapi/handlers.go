package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/i18n"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/dmitrijs2005/pwakit/internal/server/services"
)

// Form fields of the admin settings page.
const (
	FieldFormKey    = "form_key"
	FieldConfirmKey = "confirm_key"
	FieldUpload     = "pwa_upload"
	FieldBgColor    = "pwa_bg_color_"
	FieldThemeColor = "pwa_theme_color_"
)

// actions in the order they are looked up; the first one present wins.
var actions = []string{"submit", "resync", "upload", "delete"}

const maxFormMemory = services.MaxUploadSize + 1<<20

const defaultPresignTTL = 15 * time.Minute

type loginRequest struct {
	Password string `json:"password"`
}

// LoginHandler exchanges the admin password for an access token.
func LoginHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, d.Translator.Lang(i18n.FormInvalid))
			return
		}

		token, err := d.Auth.Login(r.Context(), req.Password)
		if err != nil {
			writeError(w, http.StatusUnauthorized, d.Translator.Lang(i18n.LoginError))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
	}
}

// SettingsHandler renders the admin settings view.
func SettingsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondView(w, r, d, nil)
	}
}

// ActionHandler runs one admin action. submit, resync and upload need a
// valid form key; delete asks for confirmation first and runs once the
// returned confirm key comes back.
func ActionHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseMultipartForm(maxFormMemory)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, d.Translator.Lang(i18n.FormInvalid))
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		action := pickAction(r)
		if action == "" {
			respondView(w, r, d, nil)
			return
		}

		if action != "delete" {
			if err := d.Auth.CheckFormKey(r.PostFormValue(FieldFormKey)); err != nil {
				writeError(w, http.StatusBadRequest, d.Translator.Error(err))
				return
			}
		}

		switch action {
		case "submit":
			saveSettings(w, r, d)
		case "resync":
			resync(w, r, d)
		case "upload":
			upload(w, r, d)
		case "delete":
			deleteIcon(w, r, d)
		}
	}
}

func pickAction(r *http.Request) string {
	for _, a := range actions {
		if _, ok := r.PostForm[a]; ok {
			return a
		}
	}
	return ""
}

func saveSettings(w http.ResponseWriter, r *http.Request, d *Deps) {
	ctx := r.Context()

	invalid, err := d.Settings.SaveColors(ctx, colorInput(r))
	if err != nil {
		fail(w, r, d, "save colors", err)
		return
	}
	if len(invalid) > 0 {
		msgs := make([]string, 0, len(invalid))
		for _, e := range invalid {
			msgs = append(msgs, d.Translator.Error(e))
		}
		respondView(w, r, d, msgs)
		return
	}
	writeMessage(w, d.Translator.Lang(i18n.ConfigUpdated))
}

// colorInput collects pwa_bg_color_<id> and pwa_theme_color_<id> fields.
func colorInput(r *http.Request) map[int64]services.ColorInput {
	in := map[int64]services.ColorInput{}
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		var (
			idStr string
			theme bool
		)
		switch {
		case strings.HasPrefix(key, FieldBgColor):
			idStr = strings.TrimPrefix(key, FieldBgColor)
		case strings.HasPrefix(key, FieldThemeColor):
			idStr, theme = strings.TrimPrefix(key, FieldThemeColor), true
		default:
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		c := in[id]
		if theme {
			c.ThemeColor = values[0]
		} else {
			c.BgColor = values[0]
		}
		in[id] = c
	}
	return in
}

func resync(w http.ResponseWriter, r *http.Request, d *Deps) {
	res, err := d.Icons.Resync(r.Context())
	if err != nil {
		fail(w, r, d, "resync", err)
		return
	}
	msg := d.Translator.Lang(i18n.ImgResynced)
	if len(res.Skipped) > 0 {
		msg += " " + d.Translator.Lang(i18n.ImgResyncSkipped, len(res.Skipped))
	}
	writeJSON(w, http.StatusOK, map[string]any{"S_ERROR": false, "MESSAGE": msg, "RESULT": res})
}

func upload(w http.ResponseWriter, r *http.Request, d *Deps) {
	var (
		filename string
		body     io.Reader
	)
	file, header, err := r.FormFile(FieldUpload)
	if err == nil {
		defer file.Close()
		filename, body = uploadName(header), file
	}

	if _, err := d.Icons.Upload(r.Context(), filename, body); err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			loggerFrom(r.Context(), d.Logger).Error(r.Context(), "upload failed", "error", err)
		}
		respondView(w, r, d, []string{d.Translator.Error(err)})
		return
	}
	writeMessage(w, d.Translator.Lang(i18n.ImgUploadSuccess))
}

func uploadName(h *multipart.FileHeader) string {
	if h == nil {
		return ""
	}
	return h.Filename
}

func deleteIcon(w http.ResponseWriter, r *http.Request, d *Deps) {
	path := r.PostFormValue("delete")

	confirmKey := r.PostFormValue(FieldConfirmKey)
	if confirmKey == "" {
		key, err := d.Auth.ConfirmKey(path)
		if err != nil {
			fail(w, r, d, "confirm key", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"S_CONFIRM":     true,
			"MESSAGE":       d.Translator.Lang(i18n.ImgDelete),
			"delete":        path,
			FieldConfirmKey: key,
		})
		return
	}
	if err := d.Auth.CheckConfirmKey(confirmKey, path); err != nil {
		writeError(w, http.StatusBadRequest, d.Translator.Lang(i18n.FormInvalid))
		return
	}

	name, err := d.Icons.Delete(r.Context(), path)
	if err != nil {
		loggerFrom(r.Context(), d.Logger).Warn(r.Context(), "delete failed", "path", path, "error", err)
		writeError(w, statusFor(err), d.Translator.Lang(i18n.ImgDeleteError, d.Translator.Error(err)))
		return
	}
	writeMessage(w, d.Translator.Lang(i18n.ImgDeleted, name))
}

func fail(w http.ResponseWriter, r *http.Request, d *Deps, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context(), d.Logger).Error(r.Context(), op+" failed", "error", err)
	}
	writeError(w, status, d.Translator.Error(err))
}

// respondView writes the settings view, carrying errs as the page error.
func respondView(w http.ResponseWriter, r *http.Request, d *Deps, errs []string) {
	view, err := settingsView(r.Context(), d, errs)
	if err != nil {
		fail(w, r, d, "settings view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func settingsView(ctx context.Context, d *Deps, errs []string) (map[string]any, error) {
	name, short, err := d.Settings.SiteNames(ctx)
	if err != nil {
		return nil, err
	}
	styles, err := d.Settings.Styles(ctx)
	if err != nil {
		return nil, err
	}
	icons, err := d.Icons.Icons(ctx, d.BoardPath)
	if err != nil {
		return nil, err
	}
	formKey, err := d.Auth.FormKey()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"SITE_NAME":       name,
		"SITE_NAME_SHORT": short,
		"PWA_IMAGES_DIR":  d.Icons.StoragePath(),
		"PWA_KIT_ICONS":   icons,
		"STYLES":          styles,
		"FORM_KEY":        formKey,
		"S_ERROR":         len(errs) > 0,
		"ERROR_MSG":       strings.Join(errs, "<br>"),
	}, nil
}

// ManifestHandler serves the web app manifest for the requested style, or
// the default one.
func ManifestHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		style, err := requestedStyle(ctx, d, r.URL.Query().Get("style"))
		if err != nil {
			fail(w, r, d, "manifest style", err)
			return
		}
		name, short, err := d.Settings.SiteNames(ctx)
		if err != nil {
			fail(w, r, d, "manifest names", err)
			return
		}
		manifest, err := d.Hooks.Manifest(ctx, name, short, d.BoardPath, style)
		if err != nil {
			fail(w, r, d, "manifest", err)
			return
		}

		w.Header().Set("Content-Type", "application/manifest+json")
		_ = json.NewEncoder(w).Encode(manifest)
	}
}

// PageHeaderHandler returns the touch icon links and color meta values a
// board page header needs for the requested style.
func PageHeaderHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		style, err := requestedStyle(ctx, d, r.URL.Query().Get("style"))
		if err != nil {
			fail(w, r, d, "page header style", err)
			return
		}
		vars, err := d.Hooks.PageHeader(ctx, d.BoardPath, style)
		if err != nil {
			fail(w, r, d, "page header", err)
			return
		}
		writeJSON(w, http.StatusOK, vars)
	}
}

// requestedStyle resolves the style query value. An unknown or missing
// style falls back to the default; no styles at all means no colors.
func requestedStyle(ctx context.Context, d *Deps, raw string) (*models.Style, error) {
	id, _ := strconv.ParseInt(raw, 10, 64)
	style, err := d.Settings.Style(ctx, id)
	if errors.Is(err, common.ErrorNotFound) && id > 0 {
		style, err = d.Settings.Style(ctx, 0)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return style, err
}

type presigner interface {
	PresignGet(ctx context.Context, name string, ttl time.Duration) (string, error)
}

// IconFileHandler serves one icon. Stores that can presign URLs redirect
// there; the rest stream the bytes.
func IconFileHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := r.PathValue("name")

		if p, ok := d.Icons.Store().(presigner); ok {
			rel, err := services.NormalizeDeletePath(name, d.Icons.StoragePath())
			if err != nil || !strings.HasSuffix(rel, services.IconExt) {
				http.NotFound(w, r)
				return
			}
			ttl := d.PresignTTL
			if ttl <= 0 {
				ttl = defaultPresignTTL
			}
			url, err := p.PresignGet(ctx, rel, ttl)
			if err != nil {
				fail(w, r, d, "presign", err)
				return
			}
			http.Redirect(w, r, url, http.StatusFound)
			return
		}

		rc, err := d.Icons.Open(ctx, name)
		if err != nil {
			if statusFor(err) == http.StatusNotFound || statusFor(err) == http.StatusBadRequest {
				http.NotFound(w, r)
				return
			}
			fail(w, r, d, "open icon", err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", services.IconType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if _, err := io.Copy(w, rc); err != nil {
			loggerFrom(ctx, d.Logger).Warn(ctx, "icon stream interrupted", "path", name, "error", err)
		}
	}
}
