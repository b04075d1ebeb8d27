package styles

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var postgresQueries = queries{
	selectActive: `SELECT style_id, style_name, style_active, pwa_bg_color, pwa_theme_color
		FROM styles WHERE style_active ORDER BY style_name`,
	get: `SELECT style_id, style_name, style_active, pwa_bg_color, pwa_theme_color
		FROM styles WHERE style_id=$1`,
	updateColors: `UPDATE styles SET pwa_bg_color=$1, pwa_theme_color=$2 WHERE style_id=$3`,
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}
