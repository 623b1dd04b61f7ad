// Package batch extracts every report document of a directory in parallel.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"fjacquet/ccris-extract/internal/export"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/models"
	"fjacquet/ccris-extract/internal/report"
	"fjacquet/ccris-extract/internal/textsource"
)

// Loader reads a document from disk.
type Loader interface {
	Load(ctx context.Context, path string) (models.Document, error)
}

// Generator runs the extraction pipeline on a document.
type Generator interface {
	Generate(ctx context.Context, doc models.Document) (*models.Report, error)
}

// Result is the outcome of one document.
type Result struct {
	Input  string
	Output string
	// Missing lists the sections that could not be extracted.
	Missing  []string
	Err      error
	Duration time.Duration
}

// Summary is the outcome of a batch run, results in input order.
type Summary struct {
	Results   []Result
	Succeeded int
	Failed    int
}

// Processor processes documents with a bounded number of workers. Each
// document runs in its own goroutine; pipelines share no state.
type Processor struct {
	logger    logging.Logger
	loader    Loader
	generator Generator
	writer    export.Writer
	workers   int
}

// NewProcessor creates a batch processor. workers below 1 means one.
func NewProcessor(logger logging.Logger, loader Loader, generator Generator, writer export.Writer, workers int) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		logger:    logger,
		loader:    loader,
		generator: generator,
		writer:    writer,
		workers:   workers,
	}
}

// ListInputs returns the supported documents directly inside dir, sorted.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading input directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !textsource.IsSupported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ProcessFile extracts input and writes the report to output.
func (p *Processor) ProcessFile(ctx context.Context, input, output string) (res Result) {
	start := time.Now()
	res = Result{Input: input, Output: output}
	defer func() { res.Duration = time.Since(start) }()

	doc, err := p.loader.Load(ctx, input)
	if err != nil {
		res.Err = err
		return res
	}
	r, err := p.generator.Generate(ctx, doc)
	if err != nil {
		res.Err = err
		return res
	}
	res.Missing = report.Missing(r)
	if err := export.WriteFile(output, p.writer, r); err != nil {
		res.Err = fmt.Errorf("error writing %s: %w", output, err)
	}
	return res
}

// ProcessDir processes every supported document of inputDir into
// outputDir as <name>.<ext>. A failing document is recorded in its Result
// and does not stop the others; only cancellation aborts the run.
func (p *Processor) ProcessDir(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	inputs, err := ListInputs(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return Summary{}, fmt.Errorf("error creating output directory: %w", err)
	}

	p.logger.Info("Starting batch extraction",
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldCount, Value: len(inputs)},
		logging.Field{Key: logging.FieldWorkers, Value: p.workers})

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessFile(gctx, input, export.OutputPath(outputDir, input, p.writer))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("batch extraction cancelled: %w", err)
	}

	summary := Summary{Results: results}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			p.logger.WithError(res.Err).Warn("Document failed",
				logging.Field{Key: logging.FieldFile, Value: res.Input})
			continue
		}
		summary.Succeeded++
		if len(res.Missing) > 0 {
			p.logger.Warn("Document extracted with missing sections",
				logging.Field{Key: logging.FieldFile, Value: res.Input},
				logging.Field{Key: logging.FieldReason, Value: res.Missing})
		}
	}

	p.logger.Info("Batch extraction completed",
		logging.Field{Key: logging.FieldCount, Value: len(inputs)},
		logging.Field{Key: logging.FieldStatus, Value: fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)})
	return summary, nil
}
