package ports

// ArchiveCache inspects crate archives already present in the local cache.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ArchiveCache interface {
	// Exists reports whether a file is present at path.
	Exists(path string) (bool, error)

	// Hash returns the hex-encoded SHA-256 digest of the file at path.
	Hash(path string) (string, error)

	// Remove deletes the file at path. A missing file is not an error.
	Remove(path string) error
}
