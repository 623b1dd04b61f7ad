// Package parsererror defines the typed errors of the extraction pipeline.
//
// Structural misses (SectionNotFoundError, HeaderNotFoundError) are turned
// into the result object's error string and never abort a document. Only
// EmptyInputError and InvalidFormatError are fatal for a document.
package parsererror

import "fmt"

// ParseError represents a failure in one pipeline stage.
type ParseError struct {
	Stage string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Stage, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an invalid configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// InvalidFormatError represents an input document that cannot be read as
// the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// EmptyInputError reports a document without any text line.
type EmptyInputError struct {
	Source string
}

func (e *EmptyInputError) Error() string {
	if e.Source == "" {
		return "empty input: no text lines to extract from"
	}
	return fmt.Sprintf("empty input: no text lines in '%s'", e.Source)
}

// SectionNotFoundError reports a ledger section whose start marker never
// appears, or whose body is empty.
type SectionNotFoundError struct {
	Section     string
	StartMarker string
	EndMarker   string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("%s section not found between '%s' and '%s'",
		e.Section, e.StartMarker, e.EndMarker)
}

// HeaderNotFoundError reports a section whose required header row is
// missing.
type HeaderNotFoundError struct {
	Section string
	Header  string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s header not found in %s section", e.Header, e.Section)
}
