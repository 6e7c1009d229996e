package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord strips leading and trailing non-word symbols so two surface
// forms of the same token (e.g. "apple," and "apple") share one translation
// cache entry. Interior punctuation is preserved.
func NormalizeWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !isWordRune(r)
	})
}

// isWordRune matches the \w class: letters, digits, and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
