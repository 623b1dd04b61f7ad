package extract

import (
	"regexp"
	"strings"
	"sync"

	"fjacquet/ccris-extract/internal/models"
)

// Label-anchored extractors search the whole normalised document text for
// `label [:-] value`. Labels are matched literally and case-insensitively.

// labelPatterns caches compiled label patterns by their source.
var labelPatterns sync.Map

func labelPattern(label, value string) *regexp.Regexp {
	src := `(?i)` + regexp.QuoteMeta(label) + `\s*[:\-]?\s*` + value
	if re, ok := labelPatterns.Load(src); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := labelPatterns.LoadOrStore(src, regexp.MustCompile(src))
	return re.(*regexp.Regexp)
}

const (
	intValue  = `([0-9]+)`
	dateValue = `([0-9]{1,2}\s+[A-Za-z]{3}\s+[0-9]{4})`
	wordValue = `([A-Za-z0-9/\-.() ]{1,80})`
	lineValue = `([^\n]+)`
)

// IntAfterLabel returns the first integer following label.
func IntAfterLabel(label, text string) *int {
	m := labelPattern(label, intValue).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return models.ParseCountPtr(m[1])
}

// IntAfterLabelAll returns every integer following label, in document
// order. Reports covering several subjects carry one per subject block.
func IntAfterLabelAll(label, text string) []*int {
	matches := labelPattern(label, intValue).FindAllStringSubmatch(text, -1)
	values := make([]*int, 0, len(matches))
	for _, m := range matches {
		values = append(values, models.ParseCountPtr(m[1]))
	}
	return values
}

// DateAfterLabel returns the first "DD Mon YYYY" date following label.
func DateAfterLabel(label, text string) *string {
	m := labelPattern(label, dateValue).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	return &v
}

// WordAfterLabel returns the short value following label, cut at the end
// of its line.
func WordAfterLabel(label, text string) *string {
	m := labelPattern(label, wordValue).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(strings.SplitN(m[1], "\n", 2)[0])
	if v == "" {
		return nil
	}
	return &v
}

// LineAfterLabelAll returns the rest of the line after every occurrence of
// label, skipping empty values.
func LineAfterLabelAll(label, text string) []string {
	var values []string
	for _, m := range labelPattern(label, lineValue).FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); v != "" {
			values = append(values, v)
		}
	}
	return values
}
