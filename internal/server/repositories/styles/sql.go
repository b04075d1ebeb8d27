package styles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

type queries struct {
	selectActive string
	get          string
	updateColors string
}

// SQLRepository implements Repository over a dbx.DBTX.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *SQLRepository) SelectActive(ctx context.Context) ([]*models.Style, error) {
	rows, err := r.db.QueryContext(ctx, r.q.selectActive)
	if err != nil {
		return nil, fmt.Errorf("failed to select styles: %w", err)
	}
	defer rows.Close()

	var result []*models.Style
	for rows.Next() {
		var item models.Style
		if err := rows.Scan(&item.ID, &item.Name, &item.Active, &item.BgColor, &item.ThemeColor); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Style, error) {
	item := &models.Style{}
	err := r.db.QueryRowContext(ctx, r.q.get, id).
		Scan(&item.ID, &item.Name, &item.Active, &item.BgColor, &item.ThemeColor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select style: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) UpdateColors(ctx context.Context, id int64, bgColor, themeColor string) error {
	res, err := r.db.ExecContext(ctx, r.q.updateColors, bgColor, themeColor, id)
	if err != nil {
		return fmt.Errorf("failed to update style: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
