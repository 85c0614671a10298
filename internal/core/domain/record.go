package domain

import (
	"regexp"
	"sort"

	"github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// NoChecksum is the lockfile value marking an entry without a checksum.
const NoChecksum = "<none>"

var checksumKeyPattern = regexp.MustCompile(`^checksum (\S+) (\S+) \((.+)\)$`)

// PackageRecord is one locked package.
type PackageRecord struct {
	Name     string
	Version  string
	Source   string
	Checksum *string
}

// HasChecksum reports whether the record declares a checksum.
func (r PackageRecord) HasChecksum() bool {
	return r.Checksum != nil
}

// Equal reports whether both records carry the same four fields.
func (r PackageRecord) Equal(o PackageRecord) bool {
	if r.Name != o.Name || r.Version != o.Version || r.Source != o.Source {
		return false
	}
	if r.Checksum == nil || o.Checksum == nil {
		return r.Checksum == nil && o.Checksum == nil
	}
	return *r.Checksum == *o.Checksum
}

// ParseChecksumEntry parses a single metadata entry of the form
// "checksum <name> <version> (<source>)" = "<hex>|<none>".
func ParseChecksumEntry(key, value string) (PackageRecord, error) {
	m := checksumKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return PackageRecord{}, NewError(ErrParse, zerr.With(zerr.New("malformed metadata key"), "key", key))
	}

	rec := PackageRecord{
		Name:    m[1],
		Version: m[2],
		Source:  m[3],
	}
	if value != NoChecksum {
		checksum := value
		rec.Checksum = &checksum
	}
	return rec, nil
}

// SortRecords orders records by name, then by semantic version, then by source.
// Versions that do not parse are compared as strings.
func SortRecords(records []PackageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if c := compareVersions(a.Version, b.Version); c != 0 {
			return c < 0
		}
		return a.Source < b.Source
	})
}

func compareVersions(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA != nil || errB != nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return va.Compare(vb)
}
