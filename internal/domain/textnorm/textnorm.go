// Package textnorm canonicalizes free-text answers before they are compared.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostrophes folds the apostrophe variants players type (or paste) into a
// single straight apostrophe.
var apostrophes = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"´", "'", // acute accent
	"`", "'",
)

// separators turns dashes into spaces and drops periods so "F.C." and "FC"
// or "Saint-Etienne" and "Saint Etienne" compare equal.
var separators = strings.NewReplacer(
	"-", " ",
	"‐", " ", // hyphen
	"‑", " ", // non-breaking hyphen
	"‒", " ", // figure dash
	"–", " ", // en dash
	"—", " ", // em dash
	".", "",
)

// Normalize lowercases s, strips diacritics, folds apostrophes, turns dashes
// into spaces, removes periods and collapses whitespace. It is pure and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = stripDiacritics(s)
	s = apostrophes.Replace(s)
	s = separators.Replace(s)
	return collapseWhitespace(s)
}

// Words splits a normalized string into its space separated tokens.
func Words(s string) []string {
	return strings.Fields(s)
}

// LastWord returns the final token of s, or "" when s has none.
func LastWord(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// collapseWhitespace also trims, which keeps Normalize idempotent when a
// leading dash has just become a space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
