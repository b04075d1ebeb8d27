// Package storagefiles persists the tracking ledger: which root-relative
// file paths are known to a storage namespace.
package storagefiles

import (
	"context"

	"github.com/dmitrijs2005/pwakit/internal/server/models"
)

type Repository interface {
	// SelectPaths returns the tracked paths of one namespace ordered by path.
	SelectPaths(ctx context.Context, storage string) ([]string, error)
	// Upsert tracks a file, updating its size when it is already tracked.
	Upsert(ctx context.Context, file *models.StorageFile) error
	// Delete untracks one path. Deleting an untracked path is not an error.
	Delete(ctx context.Context, storage, path string) error
	// DeleteAll untracks every path of a namespace.
	DeleteAll(ctx context.Context, storage string) error
}
