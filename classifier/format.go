package classifier

import "strings"

// Arrow separates an email from its category in the plain-text form.
const Arrow = " → "

// Format renders results one per line as "email → category".
func Format(results []Result) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Email+Arrow+r.PredictedCategory)
	}
	return strings.Join(lines, "\n")
}
