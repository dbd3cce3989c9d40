package pipeline

import (
	"regexp"
	"strings"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z0-9.,!? ]+`)
)

// Clean normalizes raw text into a document the quiz core accepts:
// whitespace collapsed, characters outside [a-zA-Z0-9.,!? ] removed, lowercase.
func Clean(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = disallowedPattern.ReplaceAllString(text, "")
	return strings.ToLower(text)
}
