package classifier

import (
	"regexp"
	"strings"
)

// A blank line, possibly holding whitespace, separates two emails.
var blankLine = regexp.MustCompile(`\n\s*\n`)

// Split breaks raw pasted text into trimmed, non-empty email bodies.
func Split(raw string) []string {
	var emails []string
	for _, block := range blankLine.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		emails = append(emails, block)
	}
	return emails
}

// Join is the inverse used when prefilling the input: bodies separated by one
// blank line. Bodies are trimmed and internal blank lines are collapsed so
// that Split(Join(x)) keeps each body as a single email.
func Join(bodies []string) string {
	parts := make([]string, 0, len(bodies))
	for _, b := range bodies {
		b = strings.TrimSpace(strings.ReplaceAll(b, "\r\n", "\n"))
		b = blankLine.ReplaceAllString(b, "\n")
		if b == "" {
			continue
		}
		parts = append(parts, b)
	}
	return strings.Join(parts, "\n\n")
}
