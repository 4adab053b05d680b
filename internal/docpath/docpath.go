// Package docpath canonicalizes the heterogeneous path spellings found
// in navigation trees and record sources, so that a navigation reference
// and a stored record can be matched on one key.
package docpath

import (
	"path"
	"strings"
)

// DefaultNavPrefixes are the known spellings a navigation tree may
// prefix a record path with, checked in order after normalization.
var DefaultNavPrefixes = []string{
	"reference/engine/",
	"en-us/reference/engine/",
	"engine/",
}

// NormalizeRel brings a path into canonical relative POSIX form:
// forward slashes, cleaned, no leading "./" or "/".
func NormalizeRel(p string) string {
	s := strings.ReplaceAll(p, "\\", "/")
	s = path.Clean(s)

	return strings.TrimLeft(s, "./")
}

// StripNavPrefix normalizes p and removes the first matching prefix,
// yielding a path relative to the documents root. Paths with no known
// prefix pass through unchanged.
func StripNavPrefix(p string, prefixes []string) string {
	s := NormalizeRel(p)

	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}

	return s
}

// Candidates expands a doc-root-relative path into the lookup keys to
// try against the record store: the path as-is, plus a ".yaml" variant
// when the extension is missing.
func Candidates(rel string) []string {
	out := []string{rel}

	if !strings.HasSuffix(strings.ToLower(rel), ".yaml") {
		out = append(out, rel+".yaml")
	}

	return out
}

// ToURL converts a relative source path into its public URL under
// baseURL, dropping the ".yaml" extension.
func ToURL(baseURL, rel string) string {
	slug := rel
	if strings.HasSuffix(strings.ToLower(slug), ".yaml") {
		slug = slug[:len(slug)-len(".yaml")]
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(slug, "/")
}

// TrimYAMLExt drops a trailing ".yaml" from rel, case-insensitively.
func TrimYAMLExt(rel string) string {
	if strings.HasSuffix(strings.ToLower(rel), ".yaml") {
		return rel[:len(rel)-len(".yaml")]
	}

	return rel
}
