// Package utils provides small shared helpers: stable item IDs,
// timestamp parsing, and URL handling.
package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// HashCode returns a stable 12-hex-character hash of s.
// Used for item identity, not for anything security sensitive.
func HashCode(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// GenerateID derives a stable unique identifier from a URL and source name.
// Deterministic across processes given the same inputs.
func GenerateID(url, source string) string {
	return fmt.Sprintf("%s-%s", HashCode(source), HashCode(url))
}
