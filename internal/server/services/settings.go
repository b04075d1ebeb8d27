package services

import (
	"context"
	"database/sql"
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/repomanager"
)

// Config keys read from the board configuration.
const (
	ConfigSiteName      = "sitename"
	ConfigSiteNameShort = "sitename_short"
)

// ShortNameLength is the longest generated short name, in characters.
const ShortNameLength = 12

var (
	hexColor = regexp.MustCompile(`(?i)^#([0-9A-F]{3}){1,2}$`)
	entity   = regexp.MustCompile(`&[#a-zA-Z0-9]+;`)
)

// ColorInput is the submitted pair of colors for one style.
type ColorInput struct {
	BgColor    string
	ThemeColor string
}

// SettingsService reads the board name and stores per-style web app colors.
type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *SettingsService {
	return &SettingsService{db: db, repomanager: m, logger: logger.With("module", "settings")}
}

// ValidateHexColor accepts "", "#rgb" and "#rrggbb" in any case. Surrounding
// whitespace is ignored.
func ValidateHexColor(code string) error {
	code = strings.TrimSpace(code)
	if code == "" || hexColor.MatchString(code) {
		return nil
	}
	return &common.ColorError{Color: code}
}

// ShortName cuts name to ShortNameLength characters. Names carrying HTML
// entities are decoded first and escaped again afterwards.
func ShortName(name string) string {
	if strings.Contains(name, "&") && entity.MatchString(name) {
		return html.EscapeString(truncate(html.UnescapeString(name), ShortNameLength))
	}
	return truncate(name, ShortNameLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SiteNames returns the board name and its short form. An unset short name
// is derived from the full one.
func (s *SettingsService) SiteNames(ctx context.Context) (name, short string, err error) {
	repo := s.repomanager.Settings(s.db)

	name, err = repo.Get(ctx, ConfigSiteName)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	short, err = repo.Get(ctx, ConfigSiteNameShort)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", "", err
	}
	if short == "" {
		short = ShortName(name)
	}
	return name, short, nil
}

// SetConfig writes one board configuration value.
func (s *SettingsService) SetConfig(ctx context.Context, key, value string) error {
	return s.repomanager.Settings(s.db).Set(ctx, key, value)
}

// Styles lists the active styles.
func (s *SettingsService) Styles(ctx context.Context) ([]*models.Style, error) {
	return s.repomanager.Styles(s.db).SelectActive(ctx)
}

// Style returns the style with id, or the first active style when id is
// not positive.
func (s *SettingsService) Style(ctx context.Context, id int64) (*models.Style, error) {
	if id > 0 {
		return s.repomanager.Styles(s.db).Get(ctx, id)
	}
	styles, err := s.Styles(ctx)
	if err != nil {
		return nil, err
	}
	if len(styles) == 0 {
		return nil, common.ErrorNotFound
	}
	return styles[0], nil
}

// SaveColors stores the submitted colors of every active style in one
// transaction. A style missing from input gets empty colors. An invalid
// code keeps the style's previous value and is reported in the returned
// list; it does not stop the other updates.
func (s *SettingsService) SaveColors(ctx context.Context, input map[int64]ColorInput) ([]error, error) {
	styles, err := s.Styles(ctx)
	if err != nil {
		return nil, err
	}

	var invalid []error
	pick := func(submitted, current string) string {
		if err := ValidateHexColor(submitted); err != nil {
			invalid = append(invalid, err)
			return current
		}
		return strings.TrimSpace(submitted)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Styles(tx)
		for _, st := range styles {
			in := input[st.ID]
			bg := pick(in.BgColor, st.BgColor)
			theme := pick(in.ThemeColor, st.ThemeColor)
			if err := repo.UpdateColors(ctx, st.ID, bg, theme); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "colors saved", "styles", len(styles), "invalid", len(invalid))
	return invalid, nil
}
