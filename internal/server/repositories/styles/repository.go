// Package styles reads board styles and stores their web app colors.
package styles

import (
	"context"

	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

type Repository interface {
	// SelectActive returns active styles ordered by name.
	SelectActive(ctx context.Context) ([]*models.Style, error)
	// Get returns one style or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Style, error)
	// UpdateColors stores the background and theme colors of one style.
	UpdateColors(ctx context.Context, id int64, bgColor, themeColor string) error
}
