package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/dbx"
)

type queries struct {
	get string
	set string
}

// SQLRepository implements Repository over a dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *SQLRepository) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.q.get, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to select config %s: %w", name, err)
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, name, value string) error {
	if _, err := r.db.ExecContext(ctx, r.q.set, name, value); err != nil {
		return fmt.Errorf("failed to set config %s: %w", name, err)
	}
	return nil
}
