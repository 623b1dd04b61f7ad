// Package section finds named sections in a flat line stream. Markers are
// matched by case-insensitive substring containment; the marker lines
// themselves never appear in the output.
package section

import (
	"regexp"
	"strings"

	"fjacquet/ccris-extract/internal/models"
)

// Locate returns the first section opened by startMarker. The section runs
// until a line containing endMarker, or to the end of the stream when the
// end marker never appears. It returns false when startMarker is absent.
func Locate(lines models.LineStream, startMarker, endMarker string) (models.Section, bool) {
	start := strings.ToLower(startMarker)
	end := strings.ToLower(endMarker)

	sec := models.Section{StartMarker: startMarker, EndMarker: endMarker}
	inSection := false
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !inSection {
			if strings.Contains(lower, start) {
				inSection = true
			}
			continue
		}
		if strings.Contains(lower, end) {
			sec.Terminated = true
			return sec, true
		}
		sec.Lines = append(sec.Lines, line)
	}
	return sec, inSection
}

// LocateAll returns every section opened by startMarker in document order.
// A start marker seen while already inside a section closes the open one
// and begins the next. A trailing unterminated section is also returned.
func LocateAll(lines models.LineStream, startMarker, endMarker string) []models.Section {
	start := strings.ToLower(startMarker)
	end := strings.ToLower(endMarker)

	var sections []models.Section
	var current *models.Section
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, start) {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &models.Section{StartMarker: startMarker, EndMarker: endMarker}
			continue
		}
		if current == nil {
			continue
		}
		if strings.Contains(lower, end) {
			current.Terminated = true
			sections = append(sections, *current)
			current = nil
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

// Blocks is the text-level counterpart used by whole-document label
// searches. It returns the text following each match of start up to the
// next match of end (exclusive), or to the end of text when end is nil or
// never matches. Blocks do not overlap; the search for the next start
// resumes where the previous block stopped.
func Blocks(text string, start, end *regexp.Regexp) []string {
	var blocks []string
	pos := 0
	for pos <= len(text) {
		loc := start.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		bodyStart := pos + loc[1]
		bodyEnd := len(text)
		if end != nil {
			if e := end.FindStringIndex(text[bodyStart:]); e != nil {
				bodyEnd = bodyStart + e[0]
			}
		}
		blocks = append(blocks, text[bodyStart:bodyEnd])
		if bodyEnd == pos {
			pos++
			continue
		}
		pos = bodyEnd
	}
	return blocks
}

// BlocksBetweenStarts splits text at every match of start and returns the
// text following each match up to the next match (or the end of text).
func BlocksBetweenStarts(text string, start *regexp.Regexp) []string {
	locs := start.FindAllStringIndex(text, -1)
	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		next := len(text)
		if i+1 < len(locs) {
			next = locs[i+1][0]
		}
		blocks = append(blocks, text[loc[1]:next])
	}
	return blocks
}
