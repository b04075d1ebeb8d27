package storagefiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

type queries struct {
	selectPaths string
	upsert      string
	delete      string
	deleteAll   string
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// The dialect only changes the query text.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *SQLRepository) SelectPaths(ctx context.Context, storage string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.q.selectPaths, storage)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		result = append(result, path)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, file *models.StorageFile) error {
	if _, err := r.db.ExecContext(ctx, r.q.upsert, file.Path, file.Storage, file.Size); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, storage, path string) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, path, storage); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteAll(ctx context.Context, storage string) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteAll, storage); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}
