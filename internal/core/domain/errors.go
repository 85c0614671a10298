package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Error kinds. Every error produced while fetching is joined with exactly one of these
// so that callers can classify it with errors.Is.
var (
	// ErrParse is returned when the lockfile or one of its entries is malformed.
	ErrParse = zerr.New("failed to parse lockfile")

	// ErrResolution is returned when the registry configuration cannot be fetched or understood.
	ErrResolution = zerr.New("failed to resolve download link")

	// ErrDownload is returned when a crate archive cannot be fetched.
	ErrDownload = zerr.New("failed to download crate")

	// ErrChecksumMismatch is returned when downloaded bytes do not match the declared checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrIO is returned when a cache file cannot be read, created or written.
	ErrIO = zerr.New("cache io failed")
)

var (
	// ErrFetchFailed is returned when at least one crate of a run could not be fetched.
	ErrFetchFailed = zerr.New("fetch failed")

	// ErrVerifyFailed is returned when at least one cached crate does not match its checksum.
	ErrVerifyFailed = zerr.New("verification failed")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to decode configuration")

	// ErrReportWriteFailed is returned when the run report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write run report")

	// ErrLogSetupFailed is returned when the log file cannot be prepared.
	ErrLogSetupFailed = zerr.New("failed to set up log file")
)

var errorKinds = []struct {
	kind error
	name string
}{
	{ErrParse, "parse"},
	{ErrResolution, "resolution"},
	{ErrChecksumMismatch, "checksum_mismatch"},
	{ErrDownload, "download"},
	{ErrIO, "io"},
}

// NewError tags cause with kind. The result satisfies errors.Is(err, kind) and errors.Is(err, cause).
func NewError(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return errors.Join(kind, cause)
}

// KindOf returns the short name of the error kind err belongs to, or "" if it carries none.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return ""
}
