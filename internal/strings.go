package internal

import (
	"regexp"
	"strings"
)

var colonSpaces = regexp.MustCompile(": +")

// TrimLines collapses an indented JSON literal into a single line. Tests use
// it to compare response bodies written across several lines.
func TrimLines(s string) string {
	trimmed := colonSpaces.ReplaceAllString(s, ":")
	trimmed = strings.ReplaceAll(trimmed, "\n", "")
	trimmed = strings.ReplaceAll(trimmed, "\t", "")
	trimmed = strings.TrimSpace(trimmed)
	return trimmed
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
