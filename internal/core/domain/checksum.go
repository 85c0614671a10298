package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum returns the lowercase hex sha256 digest of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum reports whether the digest of data is exactly expected.
// Comparison is case sensitive.
func VerifyChecksum(data []byte, expected string) bool {
	return Checksum(data) == expected
}
