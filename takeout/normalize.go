package takeout

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// NormalizeContent normalizes all line-ending styles to LF, collapses runs
// of three or more newlines down to exactly two, and trims leading and
// trailing whitespace. Idempotent on its own output.
func NormalizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
