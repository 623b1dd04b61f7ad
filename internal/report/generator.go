// Package report runs the full extraction pipeline over one document and
// assembles the result object.
package report

import (
	"context"
	"fmt"
	"time"

	"fjacquet/ccris-extract/internal/banking"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/nonbank"
	"fjacquet/ccris-extract/internal/parsererror"
	"fjacquet/ccris-extract/internal/summary"
)

// Generator produces a Report from a document. The three groups are
// extracted independently; a structural miss in one never stops the others.
type Generator struct {
	logger  logging.Logger
	summary *summary.Extractor
	banking *banking.Analyzer
	nonBank *nonbank.Analyzer
}

// NewGenerator creates a generator from its stage analyzers.
func NewGenerator(logger logging.Logger, summaryExtractor *summary.Extractor, bankingAnalyzer *banking.Analyzer, nonBankAnalyzer *nonbank.Analyzer) *Generator {
	return &Generator{
		logger:  logger,
		summary: summaryExtractor,
		banking: bankingAnalyzer,
		nonBank: nonBankAnalyzer,
	}
}

// Generate extracts every group of doc. An empty line stream is fatal and
// returns an EmptyInputError. The context is checked between stages.
func (g *Generator) Generate(ctx context.Context, doc models.Document) (*models.Report, error) {
	if len(doc.Lines) == 0 {
		return nil, &parsererror.EmptyInputError{Source: doc.Source}
	}
	start := time.Now()

	r := &models.Report{SourceFile: doc.Source}
	stages := []struct {
		name string
		run  func()
	}{
		{"summary", func() { r.Summary = g.summary.Extract(doc) }},
		{"banking", func() { r.Banking = g.banking.Analyze(doc) }},
		{"non-bank", func() { r.NonBank = g.nonBank.Analyze(doc) }},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("extraction of %s cancelled before %s stage: %w", doc.Source, stage.name, err)
		}
		stage.run()
	}

	g.logger.Info("Report generated",
		logging.Field{Key: logging.FieldFile, Value: doc.Source},
		logging.Field{Key: logging.FieldLines, Value: len(doc.Lines)},
		logging.Field{Key: logging.FieldRecords, Value: r.Banking.TotalRecords() + len(r.NonBank.Records)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})
	return r, nil
}

// Missing lists the structural misses of r, one entry per group.
func Missing(r *models.Report) []string {
	var missing []string
	if r.Banking.Error != "" {
		missing = append(missing, r.Banking.Error)
	}
	if r.NonBank.Error != "" {
		missing = append(missing, r.NonBank.Error)
	}
	return missing
}
