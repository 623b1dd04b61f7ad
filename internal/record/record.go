// Package record splits a ledger section into multi-line records.
//
// A line opens a new record when it starts with a 1-4 digit number followed
// by whitespace. Flattened PDF text offers no better delimiter, so a wrapped
// data line that happens to start with such a number also opens a record.
// Historical outputs depend on this exact rule; do not refine it here.
package record

import (
	"regexp"
	"strconv"

	"fjacquet/ccris-extract/internal/models"
)

var boundary = regexp.MustCompile(`^\s*(\d{1,4})\s+`)

// Ordinal returns the record number when line is a record boundary.
func Ordinal(line string) (int, bool) {
	m := boundary.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsBoundary reports whether line opens a new record.
func IsBoundary(line string) bool {
	return boundary.MatchString(line)
}

// Segment groups lines into records. Lines before the first boundary have
// no record to attach to and are dropped.
func Segment(lines []string) []models.Record {
	var records []models.Record
	var current []string
	ordinal := 0
	open := false

	flush := func() {
		if open && len(current) > 0 {
			records = append(records, models.NewRecord(ordinal, current))
		}
		current = current[:0]
		open = false
	}

	for _, line := range lines {
		if n, ok := Ordinal(line); ok {
			flush()
			ordinal = n
			open = true
			current = append(current, line)
			continue
		}
		if open {
			current = append(current, line)
		}
	}
	flush()
	return records
}
