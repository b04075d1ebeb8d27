// Package storage abstracts where icon files physically live. A Store is
// scoped to one root (the configured storage path) and addresses files by
// root-relative names.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/server/config"
)

// Store is the byte-level image store. Every method makes a single attempt;
// failures come back as *common.StorageError, with common.ErrorNotFound as
// the cause when the file is absent.
type Store interface {
	// Name identifies the provider ("local" or "s3").
	Name() string
	// Root is the configured storage path in CleanRoot form, used for
	// display and URLs.
	Root() string
	EnsureRoot(ctx context.Context) error
	Exists(ctx context.Context, name string) (bool, error)
	Size(ctx context.Context, name string) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Put(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
	// List returns the names of the files directly under the root, sorted.
	// A missing root yields an empty list.
	List(ctx context.Context) ([]string, error)
}

// CleanRoot normalizes a configured storage path to the slash-separated
// form names are prefixed with: no leading, trailing or dot segments.
// "", "." and "/" all mean the board root itself.
func CleanRoot(root string) string {
	return strings.TrimPrefix(path.Clean("/"+root), "/")
}

// New builds the Store selected by cfg.StorageProvider.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageProvider {
	case config.ProviderLocal, "":
		return NewLocalStore(cfg.BoardRoot, cfg.StoragePath), nil
	case config.ProviderS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.StorageProvider)
	}
}
