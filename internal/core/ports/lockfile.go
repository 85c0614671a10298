package ports

import "go.trai.ch/margo/internal/core/domain"

// LockfileLoader defines the interface for reading lockfiles.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileLoader interface {
	// Load reads and decodes the lockfile at path. It also returns a fingerprint of the raw content.
	Load(path string) (lockfile *domain.Lockfile, fingerprint string, err error)
}
