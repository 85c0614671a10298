// Package fs implements ports.ArchiveCache on the local file system.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	iofs "io/fs"
	"os"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArchiveCache = (*ArchiveCache)(nil)

// ArchiveCache reads and removes cached crate archives.
type ArchiveCache struct{}

// NewArchiveCache creates a new ArchiveCache.
func NewArchiveCache() *ArchiveCache {
	return &ArchiveCache{}
}

// Exists reports whether a file is present at path.
func (c *ArchiveCache) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, domain.NewError(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to stat archive"), "path", path))
	}
	return true, nil
}

// Hash streams the file at path through SHA-256.
func (c *ArchiveCache) Hash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the lockfile and cache root
	if err != nil {
		return "", domain.NewError(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", path))
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", domain.NewError(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to hash archive"), "path", path))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Remove deletes the file at path.
func (c *ArchiveCache) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return domain.NewError(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to remove archive"), "path", path))
	}
	return nil
}
