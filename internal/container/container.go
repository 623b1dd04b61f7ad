// Package container provides dependency injection for the ccris-extract
// application. It centralizes the creation and wiring of the extraction
// pipeline so commands receive their collaborators explicitly.
package container

import (
	"fmt"

	"fjacquet/ccris-extract/internal/banking"
	"fjacquet/ccris-extract/internal/batch"
	"fjacquet/ccris-extract/internal/config"
	"fjacquet/ccris-extract/internal/export"
	"fjacquet/ccris-extract/internal/extract"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/nonbank"
	"fjacquet/ccris-extract/internal/report"
	"fjacquet/ccris-extract/internal/summary"
	"fjacquet/ccris-extract/internal/textsource"
)

// Container holds all application dependencies.
//
// Container is immutable after creation: fields are private and only
// reachable through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	classifier *extract.Classifier
	terms      *extract.TermExtractor
	source     *textsource.Source
	generator  *report.Generator
	writer     export.Writer
	processor  *batch.Processor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	facilityCodes := cfg.Extraction.FacilityCodes
	if len(facilityCodes) == 0 {
		facilityCodes = extract.DefaultFacilityCodes
	}
	classifier := extract.NewClassifier(facilityCodes)
	terms := extract.NewTermExtractor(extract.TermConfig{
		TermCodes:    cfg.Extraction.TermCodes,
		LegalMarkers: cfg.Extraction.LegalMarkers,
		Window:       cfg.Extraction.HistoryWindow,
	})

	generator := report.NewGenerator(logger,
		summary.NewExtractor(logger),
		banking.NewAnalyzer(logger, classifier, terms,
			cfg.Extraction.Banking.StartMarker, cfg.Extraction.Banking.EndMarker),
		nonbank.NewAnalyzer(logger, cfg.Extraction.LegalMarkers, cfg.Extraction.HistoryWindow,
			cfg.Extraction.NonBank.StartMarker, cfg.Extraction.NonBank.EndMarker),
	)

	source := textsource.NewSource(logger, newExtractor(cfg))

	format := cfg.Output.Format
	if format == "" {
		format = export.FormatJSON
	}
	writer, err := export.NewWriter(format, export.Options{
		Pretty:    cfg.Output.Pretty,
		Delimiter: cfg.Delimiter(),
	})
	if err != nil {
		return nil, err
	}

	processor := batch.NewProcessor(logger, source, generator, writer, cfg.Batch.Workers)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldFormat, Value: format},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Batch.Workers},
		logging.Field{Key: logging.FieldHistoryWindow, Value: terms.Window()})

	return &Container{
		logger:     logger,
		config:     cfg,
		classifier: classifier,
		terms:      terms,
		source:     source,
		generator:  generator,
		writer:     writer,
		processor:  processor,
	}, nil
}

func newExtractor(cfg *config.Config) textsource.Extractor {
	primary := textsource.NewGoPDFExtractor()
	if !cfg.PDF.FallbackPdftotext {
		return primary
	}
	return &textsource.FallbackExtractor{
		Primary:   primary,
		Secondary: textsource.NewPdftotextExtractor(),
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClassifier returns the facility classifier.
func (c *Container) GetClassifier() *extract.Classifier {
	return c.classifier
}

// GetTermExtractor returns the term and conduct extractor.
func (c *Container) GetTermExtractor() *extract.TermExtractor {
	return c.terms
}

// GetSource returns the document loader.
func (c *Container) GetSource() *textsource.Source {
	return c.source
}

// GetGenerator returns the report pipeline.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetWriter returns the configured output writer.
func (c *Container) GetWriter() export.Writer {
	return c.writer
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// WithWriter returns a copy of the container using w for output. The batch
// processor is rebuilt around the new writer.
func (c *Container) WithWriter(w export.Writer) *Container {
	clone := *c
	clone.writer = w
	clone.processor = batch.NewProcessor(c.logger, c.source, c.generator, w, c.config.Batch.Workers)
	return &clone
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
