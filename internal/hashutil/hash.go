// Package hashutil centralises content hashing so change detection is
// consistent across the Bronze, Silver and Gold layers. All hashing is
// SHA-256 over UTF-8 bytes.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// SHA256Bytes returns the hex SHA-256 of raw content.
// Used for Bronze change detection and file integrity checks.
func SHA256Bytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// StableHash returns the hex SHA-256 of a canonicalised text:
// lowercased, trimmed, with runs of whitespace collapsed to one space.
// Norwegian characters (æ, ø, å) pass through untouched. Used to compare
// content while ignoring formatting differences.
func StableHash(text string) string {
	if text == "" {
		return ""
	}
	canonical := strings.ToLower(strings.TrimSpace(text))
	canonical = whitespace.ReplaceAllString(canonical, " ")
	return SHA256Bytes([]byte(canonical))
}
