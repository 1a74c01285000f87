// Package textmatch holds the case-insensitive comparisons used by filtering,
// search and category matching.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Fold().String(s)
}

// Contains reports whether substr occurs in s, ignoring case.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// Compare compares a and b ignoring case.
func Compare(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}
