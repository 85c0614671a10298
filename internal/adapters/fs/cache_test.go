package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margo/internal/adapters/fs"
	"go.trai.ch/margo/internal/core/domain"
)

func TestArchiveCache_Exists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serde-1.0.80.crate")
	c := fs.NewArchiveCache()

	ok, err := c.Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("archive"), domain.FilePerm))
	ok, err = c.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArchiveCache_ExistsError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	_, err := fs.NewArchiveCache().Exists(filepath.Join(blocker, "x.crate"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestArchiveCache_Hash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.crate")
	data := []byte("crate archive bytes")
	require.NoError(t, os.WriteFile(path, data, domain.FilePerm))

	sum, err := fs.NewArchiveCache().Hash(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Checksum(data), sum)
	assert.True(t, domain.VerifyChecksum(data, sum))
}

func TestArchiveCache_HashMissing(t *testing.T) {
	_, err := fs.NewArchiveCache().Hash(filepath.Join(t.TempDir(), "missing.crate"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArchiveCache_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.crate")
	require.NoError(t, os.WriteFile(path, nil, domain.FilePerm))
	c := fs.NewArchiveCache()

	require.NoError(t, c.Remove(path))
	assert.NoFileExists(t, path)
	require.NoError(t, c.Remove(path))
}
