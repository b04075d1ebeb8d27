package settings

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var sqliteQueries = queries{
	get: `SELECT config_value FROM config WHERE config_name=?`,
	set: `INSERT INTO config (config_name, config_value) VALUES (?, ?)
		ON CONFLICT (config_name) DO UPDATE SET config_value = excluded.config_value`,
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}
