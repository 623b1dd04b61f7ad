// Package extract provides the command extracting a single report.
package extract

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/ccris-extract/cmd/common"
	"fjacquet/ccris-extract/cmd/root"
	"fjacquet/ccris-extract/internal/validation"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one credit report",
	Long: `Extract the summary, banking ledger and non-bank lender ledger of one
credit report. The report is written to --output, or to stdout.

Example:
  ccris-extract extract -i report.pdf -o report.json
  ccris-extract extract -i report.pdf -f xlsx -o report.xlsx`,
	RunE: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("input file must be specified")
	}
	if err := validation.IsValidInputFile(input); err != nil {
		return err
	}

	_, err := common.ProcessFile(cmd.Context(), root.GetContainer(), input, root.SharedFlags.Output, cmd.OutOrStdout())
	return err
}
