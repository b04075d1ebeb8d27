package storagefiles

import "github.com/dmitrijs2005/pwakit/internal/dbx"

var sqliteQueries = queries{
	selectPaths: `SELECT file_path FROM storage WHERE storage=? ORDER BY file_path`,
	upsert: `INSERT INTO storage (file_path, storage, filesize)
		VALUES (?, ?, ?)
		ON CONFLICT (file_path, storage)
		DO UPDATE SET filesize = excluded.filesize`,
	delete:    `DELETE FROM storage WHERE file_path=? AND storage=?`,
	deleteAll: `DELETE FROM storage WHERE storage=?`,
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}
