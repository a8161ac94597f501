// Package slug converts free-form text into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// foldDiacritics strips combining marks after NFD decomposition,
// reducing č/ć/š/ž (and any other accented Latin letter) to its base form.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// đ has no combining-mark decomposition, so NFD folding misses it.
var crossedDReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// Make converts free-form text to a canonical URL slug satisfying
// ^[a-z0-9-]+$. Deterministic: the same input always yields the same output.
// Uniqueness against existing records is the caller's responsibility.
//
// Normalization rules:
//  1. Fold diacritics to base Latin letters (Članak → Clanak)
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores and slashes with dashes
//  4. Remove remaining non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes, trim leading/trailing dashes
//
// Examples:
//
//	"Test Članak"      → "test-clanak"
//	"Đakovo danas"     → "dakovo-danas"
//	"  multi   word "  → "multi-word"
//	"--leading--"      → "leading"
func Make(input string) string {
	s := crossedDReplacer.Replace(input)

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}

// Valid reports whether s is already a canonical slug.
func Valid(s string) bool {
	return s != "" && !nonAlphanumericRe.MatchString(s) && Make(s) == s
}
