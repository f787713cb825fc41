// Package textnorm folds text for case and accent insensitive comparison.
//
// The folding mirrors PostgreSQL's lower(unaccent(...)) so in-memory and
// SQL searches agree: combining marks are stripped after decomposition, and
// letters that carry no separable mark (ø, ł, ß, æ and similar) are
// replaced by the base letters unaccent maps them to.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters maps lower-case letters with no canonical decomposition to the
// ASCII that unaccent produces for them.
var letters = strings.NewReplacer(
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"ħ", "h",
	"ı", "i",
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"þ", "th",
)

// Normalize lower-cases s, strips combining diacritical marks and folds
// the remaining accented letters, so "Música" and "musica" compare equal. Lower-casing runs first because
// some upper-case letters lower to a base letter plus a combining mark.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers and transform chains carry state; build them per call.
	lowered := cases.Lower(language.Und).String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return letters.Replace(lowered)
	}
	return letters.Replace(folded)
}

// Contains reports whether needle occurs in haystack once both are normalized.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// ContainsAny reports whether needle occurs in any of the fields.
func ContainsAny(needle string, fields ...string) bool {
	n := Normalize(needle)
	for _, f := range fields {
		if strings.Contains(Normalize(f), n) {
			return true
		}
	}
	return false
}
