package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

const maxDisplayNameLen = 64

// CleanDisplayName strips markup and control characters from a
// Telegram-supplied name before it is stored or embedded into HTML
// messages.
func CleanDisplayName(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if len(input) > maxDisplayNameLen {
		input = input[:maxDisplayNameLen]
	}

	return input
}

// SanitizeText strips markup from free text such as answer attempts and
// admin-submitted question titles.
func SanitizeText(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}
