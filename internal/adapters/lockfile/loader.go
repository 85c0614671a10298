// Package lockfile reads Cargo.lock files.
package lockfile

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.LockfileLoader for TOML lockfiles.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the lockfile at path.
func (l *Loader) Load(path string) (*domain.Lockfile, string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, "", domain.NewError(domain.ErrIO, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path))
	}

	lf, err := Parse(data)
	if err != nil {
		return nil, "", zerr.With(err, "path", path)
	}
	return lf, Fingerprint(data), nil
}

// Parse decodes lockfile content.
func Parse(data []byte) (*domain.Lockfile, error) {
	var lf domain.Lockfile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, domain.NewError(domain.ErrParse, zerr.Wrap(err, "invalid TOML"))
	}
	return &lf, nil
}

// Fingerprint returns a short, stable hash of raw lockfile content.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
