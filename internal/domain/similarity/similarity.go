// Package similarity scores how close two strings are using edit distance.
package similarity

import (
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Distance returns the Levenshtein distance between a and b, where a
// substitution, insertion or deletion each cost 1. Distances are counted in
// runes, not bytes.
func Distance(a, b string) int {
	return fuzzy.LevenshteinDistance(a, b)
}

// Score returns 1 - Distance(longer, shorter)/len(longer), a value in [0, 1].
// Two empty strings are identical and score 1. Inputs are compared as given;
// callers normalize first.
func Score(a, b string) float64 {
	longer, shorter := a, b
	if utf8.RuneCountInString(b) > utf8.RuneCountInString(a) {
		longer, shorter = b, a
	}
	n := utf8.RuneCountInString(longer)
	if n == 0 {
		return 1.0
	}
	return float64(n-Distance(longer, shorter)) / float64(n)
}
