// Package parsers extracts structured fields from the free-form status text
// an external agent reports. Every field matches independently; a field
// whose pattern finds nothing in the text is simply absent from the result.
package parsers

import (
	"regexp"
	"strconv"
	"strings"
)

// sizedToken matches counts as agents print them: plain digits or
// abbreviated amounts like 120, 1,024 or 58.3K.
const sizedToken = `[\d.,]+[KMBkmb]?`

// fieldExtractor is one entry of the extraction grammar. Adding a field
// means adding an entry here; the evaluation loop never changes.
type fieldExtractor struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string) any
}

var statusFields = []fieldExtractor{
	{
		name:    "model",
		pattern: regexp.MustCompile(`Model:\s*([\w./-]+)`),
		extract: func(m []string) any { return m[1] },
	},
	{
		name:    "tokens",
		pattern: regexp.MustCompile(`Tokens:\s*(` + sizedToken + `)\s*in\s*/\s*(` + sizedToken + `)\s*out`),
		extract: func(m []string) any {
			return map[string]string{"input": m[1], "output": m[2]}
		},
	},
	{
		name:    "context",
		pattern: regexp.MustCompile(`Context:\s*(` + sizedToken + `)\s*/\s*(` + sizedToken + `)\s*\((\d+)%\)`),
		extract: func(m []string) any {
			return map[string]any{
				"used":    m[1],
				"total":   m[2],
				"percent": atoiOrZero(m[3]),
			}
		},
	},
	{
		name: "ratelimit",
		pattern: regexp.MustCompile(
			`(?s)Usage:\s*5h\s*(\d+)%\s*left\s*\(resets\s+(?:in\s+)?([^)]+)\).*?` +
				`Day\s*(\d+)%\s*left\s*\(resets\s+(?:in\s+)?([^)]+)\)`),
		extract: func(m []string) any {
			return map[string]any{
				"5h_percent_left":    atoiOrZero(m[1]),
				"5h_reset_in":        strings.TrimSpace(m[2]),
				"daily_percent_left": atoiOrZero(m[3]),
				"daily_reset_in":     strings.TrimSpace(m[4]),
			}
		},
	},
	{
		name:    "session",
		pattern: regexp.MustCompile(`Session:\s*([^\s·•|]+)`),
		extract: func(m []string) any { return m[1] },
	},
}

// ParseStatus runs every extractor over text and returns only the fields
// that matched. It never fails: partial or total non-match just yields a
// smaller (possibly empty) map.
func ParseStatus(text string) map[string]any {
	out := make(map[string]any)
	for _, f := range statusFields {
		m := f.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out[f.name] = f.extract(m)
	}
	return out
}

// atoiOrZero falls back to 0 instead of aborting the field on a bad number.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
