// Package textsource loads report documents from disk and turns them into
// the normalised line stream the pipeline consumes.
package textsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/parsererror"
	"fjacquet/ccris-extract/internal/textutils"
)

// Source loads documents. Plain text files are read as they are; anything
// else goes through the PDF extractor.
type Source struct {
	logger    logging.Logger
	extractor Extractor
}

// NewSource creates a Source. A nil extractor uses the Go PDF reader.
func NewSource(logger logging.Logger, extractor Extractor) *Source {
	if extractor == nil {
		extractor = NewGoPDFExtractor()
	}
	return &Source{logger: logger, extractor: extractor}
}

// IsSupported reports whether path has an extension Load understands.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// Load reads path into a Document. An unreadable file is reported as an
// InvalidFormatError.
func (s *Source) Load(ctx context.Context, path string) (models.Document, error) {
	raw, err := s.readText(ctx, path)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read document",
			logging.Field{Key: logging.FieldFile, Value: path})
		return models.Document{}, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
			Msg:            "document could not be read",
			Err:            err,
		}
	}

	lines := textutils.SplitLines(raw)
	doc := models.NewDocument(path, lines)
	s.logger.Debug("Document loaded",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldLines, Value: len(lines)})
	return doc, nil
}

func (s *Source) readText(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
		if err != nil {
			return "", fmt.Errorf("error reading text file: %w", err)
		}
		return string(data), nil
	}
	return s.extractor.ExtractText(ctx, path)
}
