package domain

import "path/filepath"

const (
	// RegistryDirName is the directory below the cargo home holding registry data.
	RegistryDirName = "registry"

	// CacheDirName is the directory below the registry directory holding crate archives.
	CacheDirName = "cache"

	// CrateExt is the file extension of a crate archive.
	CrateExt = ".crate"

	// DefaultRegistryURL is the crates.io index.
	DefaultRegistryURL = "https://github.com/rust-lang/crates.io-index"

	// DefaultRegistryName is the directory name cargo uses for the crates.io index.
	DefaultRegistryName = "github.com-1ecc6299db9ec823"

	// RegistrySourcePrefix prefixes the registry URL in lockfile source identifiers.
	RegistrySourcePrefix = "registry+"

	// LockfileName is the default lockfile name.
	LockfileName = "Cargo.lock"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "margo.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// RegistrySource returns the lockfile source identifier for packages from the registry at url.
func RegistrySource(url string) string {
	return RegistrySourcePrefix + url
}

// RegistryCacheDir returns the directory crate archives of one registry are cached in.
func RegistryCacheDir(cacheRoot, registryName string) string {
	return filepath.Join(cacheRoot, RegistryDirName, CacheDirName, registryName)
}
