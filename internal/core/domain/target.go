package domain

import "path/filepath"

// FetchTarget binds a package record to the cache it should be stored in.
type FetchTarget struct {
	Record       PackageRecord
	CacheRoot    string
	RegistryName string
}

// NewFetchTargets binds every record to the same cache root and registry.
func NewFetchTargets(records []PackageRecord, cacheRoot, registryName string) []FetchTarget {
	targets := make([]FetchTarget, len(records))
	for i, rec := range records {
		targets[i] = FetchTarget{
			Record:       rec,
			CacheRoot:    cacheRoot,
			RegistryName: registryName,
		}
	}
	return targets
}

// Name returns the package name.
func (t FetchTarget) Name() string {
	return t.Record.Name
}

// Version returns the package version.
func (t FetchTarget) Version() string {
	return t.Record.Version
}

// Checksum returns the declared checksum, or "" if the record has none.
func (t FetchTarget) Checksum() string {
	if t.Record.Checksum == nil {
		return ""
	}
	return *t.Record.Checksum
}

// ID identifies the target in logs and spans.
func (t FetchTarget) ID() string {
	return t.Record.Name + "@" + t.Record.Version
}

// Path returns {cache_root}/registry/cache/{registry_name}/{name}-{version}.crate.
func (t FetchTarget) Path() string {
	return filepath.Join(
		RegistryCacheDir(t.CacheRoot, t.RegistryName),
		t.Record.Name+"-"+t.Record.Version+CrateExt,
	)
}
