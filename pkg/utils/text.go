package utils

import (
	"strings"
	"unicode"
)

// NormalizeText flattens extracted text for pattern matching: lowercase,
// punctuation stripped (word characters and hyphens kept), and whitespace
// collapsed to single spaces. The result is what the search engines scan.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			if !wasSpace && b.Len() > 0 {
				b.WriteByte(' ')
				wasSpace = true
			}
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
			wasSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// CollapseWhitespace trims text and collapses runs of whitespace
// (including newlines) to single spaces, preserving case and punctuation.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
