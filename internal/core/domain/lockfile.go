package domain

// Lockfile is the decoded content of a Cargo.lock file.
type Lockfile struct {
	// Version is the lockfile format version. Format 1 files leave it unset.
	Version int `toml:"version"`

	// Packages are the [[package]] tables.
	Packages []LockedPackage `toml:"package"`

	// Metadata is the [metadata] table. Format 1 files keep checksums here.
	Metadata map[string]string `toml:"metadata"`
}

// LockedPackage is one [[package]] table.
type LockedPackage struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Source   string `toml:"source"`
	Checksum string `toml:"checksum"`
}

// AllRecords parses every checksum entry of the lockfile.
// Metadata entries are parsed first. Package tables carrying a checksum add records
// for packages not already described by metadata. The result is sorted.
func (l *Lockfile) AllRecords() ([]PackageRecord, error) {
	records := make([]PackageRecord, 0, len(l.Metadata)+len(l.Packages))
	seen := make(map[[3]string]struct{}, cap(records))

	for key, value := range l.Metadata {
		rec, err := ParseChecksumEntry(key, value)
		if err != nil {
			return nil, err
		}
		seen[[3]string{rec.Name, rec.Version, rec.Source}] = struct{}{}
		records = append(records, rec)
	}

	for _, pkg := range l.Packages {
		if pkg.Checksum == "" {
			continue
		}
		id := [3]string{pkg.Name, pkg.Version, pkg.Source}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		checksum := pkg.Checksum
		records = append(records, PackageRecord{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Source:   pkg.Source,
			Checksum: &checksum,
		})
	}

	SortRecords(records)
	return records, nil
}

// FetchableRecords returns the records that carry a checksum and come from source.
func (l *Lockfile) FetchableRecords(source string) ([]PackageRecord, error) {
	all, err := l.AllRecords()
	if err != nil {
		return nil, err
	}

	fetchable := make([]PackageRecord, 0, len(all))
	for _, rec := range all {
		if rec.HasChecksum() && rec.Source == source {
			fetchable = append(fetchable, rec)
		}
	}
	return fetchable, nil
}
