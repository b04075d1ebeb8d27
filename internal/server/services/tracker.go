// Package services contains the server-side business logic of pwakit: the
// tracking ledger, icon discovery, resync, the icon manifest, the deletion
// guard, uploads, settings and the manifest/page hooks.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/dbx"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/repomanager"
)

// FileTracker is the ledger of root-relative paths tracked for one storage
// namespace. Tracking state is independent of whether the bytes exist.
type FileTracker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     string
}

// NewFileTracker binds a tracker to the pwakit namespace.
func NewFileTracker(db *sql.DB, m repomanager.RepositoryManager) *FileTracker {
	return NewFileTrackerFor(db, m, common.StorageName)
}

// NewFileTrackerFor binds a tracker to an arbitrary namespace.
func NewFileTrackerFor(db *sql.DB, m repomanager.RepositoryManager, storage string) *FileTracker {
	return &FileTracker{db: db, repomanager: m, storage: storage}
}

// Namespace returns the storage namespace the tracker writes to.
func (t *FileTracker) Namespace() string {
	return t.storage
}

// GetTrackedFiles returns the tracked paths sorted lexicographically.
func (t *FileTracker) GetTrackedFiles(ctx context.Context) ([]string, error) {
	paths, err := t.repomanager.StorageFiles(t.db).SelectPaths(ctx, t.storage)
	if err != nil {
		return nil, &common.StorageError{Op: "select", Err: err}
	}
	return paths, nil
}

// TrackFile tracks path, or updates its recorded size if already tracked.
func (t *FileTracker) TrackFile(ctx context.Context, path string, size int64) error {
	f := &models.StorageFile{Path: path, Storage: t.storage, Size: size}
	if err := t.repomanager.StorageFiles(t.db).Upsert(ctx, f); err != nil {
		return &common.StorageError{Op: "track", Path: path, Err: err}
	}
	return nil
}

// TrackFiles tracks a batch in one transaction: either every file is
// tracked or none is. An empty batch does nothing.
func (t *FileTracker) TrackFiles(ctx context.Context, files []models.StorageFile) error {
	if len(files) == 0 {
		return nil
	}

	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := t.repomanager.StorageFiles(tx)
		for _, f := range files {
			f.Storage = t.storage
			if err := repo.Upsert(ctx, &f); err != nil {
				return &common.StorageError{Op: "track", Path: f.Path, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		var se *common.StorageError
		if errors.As(err, &se) {
			return err
		}
		return &common.StorageError{Op: "track", Err: err}
	}
	return nil
}

// UntrackFile removes path from the ledger; an untracked path is a no-op.
func (t *FileTracker) UntrackFile(ctx context.Context, path string) error {
	if err := t.repomanager.StorageFiles(t.db).Delete(ctx, t.storage, path); err != nil {
		return &common.StorageError{Op: "untrack", Path: path, Err: err}
	}
	return nil
}

// UntrackAll empties the namespace. Used on uninstall.
func (t *FileTracker) UntrackAll(ctx context.Context) error {
	if err := t.repomanager.StorageFiles(t.db).DeleteAll(ctx, t.storage); err != nil {
		return &common.StorageError{Op: "untrack", Err: err}
	}
	return nil
}
