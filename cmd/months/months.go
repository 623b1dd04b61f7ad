// Package months provides a debugging command for month header
// reconciliation.
package months

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/ccris-extract/internal/months"
)

// Cmd represents the months command
var Cmd = &cobra.Command{
	Use:   "months INITIALS...",
	Short: "Reconcile a row of month initials",
	Long: `Reconcile a row of single-letter month initials, as printed above a
conduct history, against the calendar.

Example:
  ccris-extract months J F M A M J`,
	Args: cobra.MinimumNArgs(1),
	RunE: monthsFunc,
}

func monthsFunc(cmd *cobra.Command, args []string) error {
	var initials []string
	for _, arg := range args {
		for _, r := range strings.ToUpper(strings.Join(strings.Fields(arg), "")) {
			initials = append(initials, string(r))
		}
	}

	m := months.Reconcile(initials)
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "initials:  %s\n", strings.Join(m.Initials, " "))
	_, _ = fmt.Fprintf(out, "confident: %t (score %d/%d)\n", m.Confident, m.Score, len(initials))
	if m.Confident {
		_, _ = fmt.Fprintf(out, "direction: %s from %s\n", m.Direction, m.StartMonth)
	}
	_, _ = fmt.Fprintf(out, "labels:    %s\n", strings.Join(months.Labels(m, len(initials)), " "))
	return nil
}
