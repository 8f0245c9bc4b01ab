// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD, drops combining marks, and recomposes.
// It is stateless and safe for concurrent use.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a personal name for comparison and indexing:
// trims, collapses internal whitespace runs to a single space, lowercases, and
// strips diacritics ("José  da Silva " -> "jose da silva").
func NormalizeName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// The transformer chain cannot fail on valid UTF-8; fall back to the raw
		// value so comparison still works case-insensitively.
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
