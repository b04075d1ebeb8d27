package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/server/migrations"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/settings"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/storagefiles"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/styles"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// StorageFiles returns a storagefiles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) StorageFiles(db dbx.DBTX) storagefiles.Repository {
	return storagefiles.NewPostgresRepository(db)
}

// Styles returns a styles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Styles(db dbx.DBTX) styles.Repository {
	return styles.NewPostgresRepository(db)
}

// Settings returns a settings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Settings(db dbx.DBTX) settings.Repository {
	return settings.NewPostgresRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.PostgresDir)
}
