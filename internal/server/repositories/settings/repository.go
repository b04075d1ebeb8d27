// Package settings is the board-wide key/value configuration store.
package settings

import "context"

type Repository interface {
	// Get returns the value of name or common.ErrorNotFound.
	Get(ctx context.Context, name string) (string, error)
	// Set creates or replaces the value of name.
	Set(ctx context.Context, name, value string) error
}
