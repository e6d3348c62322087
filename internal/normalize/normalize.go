// Package normalize builds comparison keys for Russian dictionary forms.
//
// Dictionary sources mark stress inconsistently: some use a combining acute
// accent over the vowel, some a stand-alone apostrophe or modifier letter,
// and user queries usually carry no mark at all. Key folds all of these away
// together with letter case so that forms can be compared for equality.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IsStressMark reports whether r is a stand-alone stress indicator used in place of a combining accent.
func IsStressMark(r rune) bool {
	switch r {
	case '\'', '\u2019', '`', '\u00b4', '\u02c8':
		return true
	}
	return false
}

// Key returns the comparison key of text: canonical decomposition, combining
// marks and stand-alone stress marks removed, lower-cased.
// The key is never meant to be displayed.
func Key(text string) string {
	if text == "" {
		return ""
	}

	// A chain keeps internal buffers, so it is built per call to stay safe for concurrent use.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(IsStressMark)),
	)
	stripped, _, _ := transform.String(t, text)
	return strings.ToLower(stripped)
}

// Equal reports whether a and b share the same comparison key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
