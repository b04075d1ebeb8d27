package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/server/migrations"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/settings"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/storagefiles"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/styles"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories for single-node
// boards that do not run a database server.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) StorageFiles(db dbx.DBTX) storagefiles.Repository {
	return storagefiles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Styles(db dbx.DBTX) styles.Repository {
	return styles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Settings(db dbx.DBTX) settings.Repository {
	return settings.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}
