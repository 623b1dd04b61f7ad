// Package textutils normalises extracted report text before it is split
// into a line stream or searched for labels.
package textutils

import (
	"regexp"
	"strings"

	"fjacquet/ccris-extract/internal/models"

	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	repeatedNewline = regexp.MustCompile(`\n+`)
	anyWhitespace   = regexp.MustCompile(`\s+`)
)

// quoteReplacer folds typographic quotes to their ASCII forms.
var quoteReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizeText folds compatibility characters (NBSP, full-width digits),
// collapses runs of spaces and tabs, drops blank lines and trims the result.
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = repeatedNewline.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// SplitLines turns raw text into a line stream of trimmed, non-empty lines.
func SplitLines(text string) models.LineStream {
	raw := strings.Split(NormalizeText(text), "\n")
	lines := make(models.LineStream, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// NormalizeLabel is the exact-match key used for human readable labels:
// typographic quotes folded, whitespace collapsed, lower case.
func NormalizeLabel(label string) string {
	label = quoteReplacer.Replace(label)
	label = anyWhitespace.ReplaceAllString(label, " ")
	return strings.ToLower(strings.TrimSpace(label))
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
