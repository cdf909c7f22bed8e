// Package normalize provides text folding for search keys.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics and lower-cases s, producing a stable search key.
func Fold(s string) string {
	result, _, err := transform.String(foldChain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// SearchKey folds and joins the given fragments into one searchable string.
// Empty fragments are dropped.
func SearchKey(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts = append(parts, Fold(f))
	}
	return strings.Join(parts, " ")
}
