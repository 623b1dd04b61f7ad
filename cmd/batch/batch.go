// Package batch handles batch processing of report directories
package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/ccris-extract/cmd/root"
	"fjacquet/ccris-extract/internal/logging"
	"fjacquet/ccris-extract/internal/validation"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch extract reports from a directory",
	Long: `Batch extract every PDF or text report of an input directory into an
output directory. Reports are processed in parallel, bounded by
batch.workers. A report that fails is logged and does not stop the others.

Example:
  ccris-extract batch -i reports/ -o extracted/ -f xlsx`,
	RunE: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}
	if err := validation.IsValidInputDir(inputDir); err != nil {
		return err
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	summary, err := appContainer.GetProcessor().ProcessDir(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}
	if len(summary.Results) == 0 {
		root.Log.Warn("No supported files found in input directory",
			logging.Field{Key: logging.FieldInputFile, Value: inputDir})
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Batch processing completed. %d extracted, %d failed.\n",
		summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d reports failed", summary.Failed, len(summary.Results))
	}
	return nil
}
