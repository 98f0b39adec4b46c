package extract

import (
	"regexp"
	"strings"
)

var (
	fenceOpen  = regexp.MustCompile("```[a-zA-Z]*\n")
	fenceClose = regexp.MustCompile("```\n?$")
)

// Comment markers that disqualify a line from being the first "real" code line.
var commentPrefixes = []string{"#", "//", "/*", "*", "<!--"}

// Trailing-prose markers that disqualify a line from ending the code body.
var trailerPrefixes = []string{"Note:", "Explanation:"}

// CleanCode strips markdown code fences and explanatory prose around a
// model-generated code body. It is a best-effort heuristic: it never
// fails, is idempotent, and returns the input unchanged when no fences
// or markers are present.
func CleanCode(text string) string {
	text = fenceOpen.ReplaceAllString(text, "")
	text = fenceClose.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	start := 0
	end := len(lines)

	for i, line := range lines {
		if strings.TrimSpace(line) != "" && !hasAnyPrefix(line, commentPrefixes) {
			start = i
			break
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" && !hasAnyPrefix(lines[i], trailerPrefixes) {
			end = i + 1
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
