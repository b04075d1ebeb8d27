package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectoryAndIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images", "site_icons")

	created, err := EnsureDir(dir)
	require.NoError(t, err)
	require.True(t, created)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o755), fi.Mode().Perm()&0o755)
	}

	idx, err := os.Stat(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	require.Zero(t, idx.Size())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	require.NoError(t, os.Mkdir(dir, 0o755))

	created, err := EnsureDir(dir)
	require.NoError(t, err)
	require.False(t, created)

	_, err = os.Stat(filepath.Join(dir, IndexFile))
	require.True(t, os.IsNotExist(err), "existing directories are left untouched")
}

func TestEnsureDir_ParentIsFile(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(file, "icons"))
	require.Error(t, err)
}
