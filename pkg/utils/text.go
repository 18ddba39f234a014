package utils

import (
	"strings"
	"unicode"
)

// NormalizeAnswer lowers the given text, trims it, strips punctuation and
// collapses runs of whitespace, so that "The  Beatles!" and "the beatles"
// compare equal.
func NormalizeAnswer(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimRight(b.String(), " ")
}
