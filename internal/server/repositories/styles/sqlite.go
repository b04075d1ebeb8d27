package styles

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var sqliteQueries = queries{
	selectActive: `SELECT style_id, style_name, style_active, pwa_bg_color, pwa_theme_color
		FROM styles WHERE style_active = 1 ORDER BY style_name`,
	get: `SELECT style_id, style_name, style_active, pwa_bg_color, pwa_theme_color
		FROM styles WHERE style_id=?`,
	updateColors: `UPDATE styles SET pwa_bg_color=?, pwa_theme_color=? WHERE style_id=?`,
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}
