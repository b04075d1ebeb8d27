package settings

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var postgresQueries = queries{
	get: `SELECT config_value FROM config WHERE config_name=$1`,
	set: `INSERT INTO config (config_name, config_value) VALUES ($1, $2)
		ON CONFLICT (config_name) DO UPDATE SET config_value = EXCLUDED.config_value`,
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}
