// Package models defines the value types that flow through the extraction
// pipeline: line streams, sections, records, parsed ledger lines and the
// per-document result object handed to exporters.
package models

import "strings"

// LineStream is an ordered sequence of trimmed, non-empty text lines.
// It is never mutated after it has been produced.
type LineStream []string

// Text joins the stream back into a newline separated document.
func (ls LineStream) Text() string {
	return strings.Join(ls, "\n")
}

// Section is the run of lines found between a start and an end marker.
type Section struct {
	StartMarker string     `json:"start_marker"`
	EndMarker   string     `json:"end_marker"`
	Lines       LineStream `json:"-"`
	// Terminated reports whether the end marker was seen. An unterminated
	// section runs to the end of the stream or to the next start marker.
	Terminated bool `json:"terminated"`
}

// Record is one logical multi-line entry of a ledger section. Ordinal is the
// leading number printed in the report; it is neither unique nor monotonic
// because bureau PDFs restart numbering per sub-table.
type Record struct {
	Ordinal int      `json:"no"`
	Lines   []string `json:"raw_lines"`
	Text    string   `json:"raw_text"`
}

// NewRecord builds a record and its space-joined text.
func NewRecord(ordinal int, lines []string) Record {
	owned := make([]string, len(lines))
	copy(owned, lines)
	return Record{
		Ordinal: ordinal,
		Lines:   owned,
		Text:    strings.Join(owned, " "),
	}
}

// FirstLine returns the boundary line that opened the record.
func (r Record) FirstLine() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[0]
}

// Document is the input to the pipeline: a line stream in page order plus
// the normalised full text used by whole-document label searches.
type Document struct {
	Source string
	Lines  LineStream
	Text   string
}

// NewDocument builds a document from a line stream, deriving the full text.
func NewDocument(source string, lines LineStream) Document {
	return Document{
		Source: source,
		Lines:  lines,
		Text:   lines.Text(),
	}
}
