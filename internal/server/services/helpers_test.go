package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/migrations/sqlitetest"
	"github.com/dmitrijs2005/pwakit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pwakit/internal/server/storage"
	"github.com/stretchr/testify/require"
)

const testRoot = "images/site_icons"

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type iconEnv struct {
	svc     *IconService
	store   *storage.LocalStore
	tracker *FileTracker
	dir     string
}

func newIconEnv(t *testing.T) *iconEnv {
	t.Helper()
	return newIconEnvAt(t, testRoot)
}

func newIconEnvAt(t *testing.T, root string) *iconEnv {
	t.Helper()
	db := sqlitetest.Open(t)
	store := storage.NewLocalStore(t.TempDir(), root)
	require.NoError(t, store.EnsureRoot(context.Background()))
	tracker := NewFileTracker(db, &repomanager.SQLiteRepositoryManager{})
	return &iconEnv{
		svc:     NewIconService(store, tracker, NewIconCache(time.Hour), logging.NewNop()),
		store:   store,
		tracker: tracker,
		dir:     store.Dir(),
	}
}

func (e *iconEnv) writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), data, 0o644))
}

func (e *iconEnv) removeFile(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(e.dir, name)))
}

func (e *iconEnv) tracked(t *testing.T) []string {
	t.Helper()
	paths, err := e.tracker.GetTrackedFiles(context.Background())
	require.NoError(t, err)
	return paths
}

// faultyStore overrides selected Store methods with canned errors.
type faultyStore struct {
	storage.Store
	sizeErr   map[string]error
	deleteErr error
	putErr    error
	listErr   error
}

func (s *faultyStore) Size(ctx context.Context, name string) (int64, error) {
	if err, ok := s.sizeErr[name]; ok {
		return 0, err
	}
	return s.Store.Size(ctx, name)
}

func (s *faultyStore) Delete(ctx context.Context, name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.Store.Delete(ctx, name)
}

func (s *faultyStore) Put(ctx context.Context, name string, r io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.Put(ctx, name, r)
}

func (s *faultyStore) List(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Store.List(ctx)
}

// readHookTracker runs onRead before every ledger read.
type readHookTracker struct {
	Tracker
	onRead func()
}

func (t *readHookTracker) GetTrackedFiles(ctx context.Context) ([]string, error) {
	t.onRead()
	return t.Tracker.GetTrackedFiles(ctx)
}

// faultyTracker fails selected ledger writes.
type faultyTracker struct {
	Tracker
	trackErr   error
	untrackErr error
}

func (t *faultyTracker) TrackFile(ctx context.Context, path string, size int64) error {
	if t.trackErr != nil {
		return t.trackErr
	}
	return t.Tracker.TrackFile(ctx, path, size)
}

func (t *faultyTracker) UntrackFile(ctx context.Context, path string) error {
	if t.untrackErr != nil {
		return t.untrackErr
	}
	return t.Tracker.UntrackFile(ctx, path)
}
