package storagefiles

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var postgresQueries = queries{
	selectPaths: `SELECT file_path FROM storage WHERE storage=$1 ORDER BY file_path`,
	upsert: `INSERT INTO storage (file_path, storage, filesize)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_path, storage)
		DO UPDATE SET filesize = EXCLUDED.filesize`,
	delete:    `DELETE FROM storage WHERE file_path=$1 AND storage=$2`,
	deleteAll: `DELETE FROM storage WHERE storage=$1`,
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}
