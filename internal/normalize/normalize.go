// Package normalize provides canonical forms for user-entered catalog
// strings so that scoring and grouping are not split by case or accents.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks after NFD decomposition, so
// "Brontë" and "Bronte" normalize to the same key.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key returns the canonical grouping key for a genre or author string:
// trimmed, accent-stripped, lowercased, inner whitespace collapsed.
func Key(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}

	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Equal reports whether two strings normalize to the same key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
