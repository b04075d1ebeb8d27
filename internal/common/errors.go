// Package common defines shared constants and sentinel errors used across
// the pwakit server and its admin client. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository / store level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Deletion guard errors.
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidName = errors.New("invalid file name")

	// Upload errors.
	ErrUploadEmpty     = errors.New("uploaded file is empty")
	ErrUploadExtension = errors.New("extension not allowed")
	ErrUploadContent   = errors.New("disallowed content")
	ErrUploadMissing   = errors.New("no upload found")
	ErrUploadExists    = errors.New("file already exists")
	ErrFileMove        = errors.New("could not move uploaded file")

	// Form errors.
	ErrFormInvalid  = errors.New("invalid form key")
	ErrInvalidColor = errors.New("invalid color code")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// StorageError reports a failed operation against the image store or the
// tracking ledger. Err carries the cause; ErrorNotFound marks a missing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFound builds a StorageError for a missing file.
func NotFound(op, path string) error {
	return &StorageError{Op: op, Path: path, Err: ErrorNotFound}
}

// UploadError is a rejected upload. Args feed the translated message
// (e.g. the offending extension).
type UploadError struct {
	Err  error
	Args []any
}

func (e *UploadError) Error() string {
	if len(e.Args) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %v", e.Err, e.Args[0])
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func (e *UploadError) MessageArgs() []any {
	return e.Args
}

// ColorError is a rejected color code.
type ColorError struct {
	Color string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidColor, e.Color)
}

func (e *ColorError) Unwrap() error {
	return ErrInvalidColor
}

func (e *ColorError) MessageArgs() []any {
	return []any{e.Color}
}
