// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/ccris-extract/internal/container"
	"fjacquet/ccris-extract/internal/export"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/report"
)

// ProcessFile extracts inputFile and writes the report to outputFile, or
// to stdout when outputFile is empty. Missing sections are logged, each of
// them, and do not fail the command.
func ProcessFile(ctx context.Context, c *container.Container, inputFile, outputFile string, stdout io.Writer) (*models.Report, error) {
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	log := c.GetLogger()

	doc, err := c.GetSource().Load(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	r, err := c.GetGenerator().Generate(ctx, doc)
	if err != nil {
		return nil, err
	}

	for _, missing := range report.Missing(r) {
		log.Warn("Section missing from report",
			logging.Field{Key: logging.FieldFile, Value: inputFile},
			logging.Field{Key: logging.FieldReason, Value: missing})
	}

	if outputFile == "" {
		if err := c.GetWriter().Write(stdout, r); err != nil {
			return nil, fmt.Errorf("error writing report: %w", err)
		}
		return r, nil
	}
	if err := export.WriteFile(outputFile, c.GetWriter(), r); err != nil {
		return nil, err
	}
	log.Info("Extraction completed successfully!",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	return r, nil
}
