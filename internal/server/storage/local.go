package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/filex"
	"github.com/google/uuid"
)

// LocalStore keeps files in <boardRoot>/<root> on the local filesystem.
type LocalStore struct {
	root string
	dir  string
}

func NewLocalStore(boardRoot, root string) *LocalStore {
	root = CleanRoot(root)
	return &LocalStore{
		root: root,
		dir:  filepath.Join(boardRoot, filepath.FromSlash(root)),
	}
}

func (s *LocalStore) Name() string { return "local" }

func (s *LocalStore) Root() string { return s.root }

// Dir is the absolute or board-relative directory backing the store.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) path(op, name string) (string, error) {
	if name == "" {
		return "", &common.StorageError{Op: op, Path: name, Err: common.ErrEmptyPath}
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", &common.StorageError{Op: op, Path: name, Err: common.ErrInvalidName}
	}
	return filepath.Join(s.dir, local), nil
}

func wrap(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return common.NotFound(op, name)
	}
	return &common.StorageError{Op: op, Path: name, Err: err}
}

// EnsureRoot creates the storage directory with an empty index file.
func (s *LocalStore) EnsureRoot(ctx context.Context) error {
	if _, err := filex.EnsureDir(s.dir); err != nil {
		return &common.StorageError{Op: "mkdir", Path: s.root, Err: err}
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, name string) (bool, error) {
	p, err := s.path("exists", name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, wrap("exists", name, err)
	}
	return true, nil
}

func (s *LocalStore) Size(ctx context.Context, name string) (int64, error) {
	p, err := s.path("size", name)
	if err != nil {
		return 0, err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return 0, wrap("size", name, err)
	}
	if fi.IsDir() {
		return 0, common.NotFound("size", name)
	}
	return fi.Size(), nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	p, err := s.path("open", name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, wrap("open", name, err)
	}
	return f, nil
}

// Put writes r to a temporary file next to the target and renames it into
// place, so readers never observe a partial icon.
func (s *LocalStore) Put(ctx context.Context, name string, r io.Reader) error {
	p, err := s.path("put", name)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".part")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return wrap("put", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return wrap("put", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return wrap("put", name, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return wrap("put", name, err)
	}
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	p, err := s.path("delete", name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return wrap("delete", name, err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, wrap("list", "", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
