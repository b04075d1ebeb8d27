package services

import (
	"context"

	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

// Hooks feeds icons and colors into the web app manifest and the page
// header.
type Hooks struct {
	icons *IconService
}

func NewHooks(icons *IconService) *Hooks {
	return &Hooks{icons: icons}
}

// ModifyManifest adds icons (src prefixed with boardPath), theme_color and
// background_color to manifest. Empty values leave the manifest untouched.
func (h *Hooks) ModifyManifest(ctx context.Context, manifest map[string]any, boardPath string, style *models.Style) error {
	icons, err := h.icons.Icons(ctx, boardPath)
	if err != nil {
		return err
	}
	if len(icons) > 0 {
		manifest["icons"] = icons
	}
	if style == nil {
		return nil
	}
	if style.ThemeColor != "" {
		manifest["theme_color"] = style.ThemeColor
	}
	if style.BgColor != "" {
		manifest["background_color"] = style.BgColor
	}
	return nil
}

// PageHeader returns the template variables for touch icon links and the
// color meta tags.
func (h *Hooks) PageHeader(ctx context.Context, rootPath string, style *models.Style) (map[string]any, error) {
	icons, err := h.icons.Icons(ctx, rootPath)
	if err != nil {
		return nil, err
	}
	srcs := make([]string, 0, len(icons))
	for _, icon := range icons {
		srcs = append(srcs, icon.Src)
	}

	vars := map[string]any{
		"U_TOUCH_ICONS":   srcs,
		"PWA_THEME_COLOR": "",
		"PWA_BG_COLOR":    "",
	}
	if style != nil {
		vars["PWA_THEME_COLOR"] = style.ThemeColor
		vars["PWA_BG_COLOR"] = style.BgColor
	}
	return vars, nil
}

// Manifest builds the base manifest document for the board and applies
// ModifyManifest to it.
func (h *Hooks) Manifest(ctx context.Context, name, shortName, boardPath string, style *models.Style) (map[string]any, error) {
	manifest := map[string]any{
		"name":        name,
		"short_name":  shortName,
		"display":     "standalone",
		"orientation": "portrait",
		"start_url":   boardPath,
		"scope":       boardPath,
		"dir":         "ltr",
	}
	if err := h.ModifyManifest(ctx, manifest, boardPath, style); err != nil {
		return nil, err
	}
	return manifest, nil
}
