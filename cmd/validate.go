package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content files for errors",
	Long: `Validate the manifest and every scheda against their JSON schemas and
the structural rules (known ids, unique exercise ids, exercise counts).

Exits with a non-zero status when errors are found; warnings are reported
but do not fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := newLoader(loadConfig(cmd))
		report, err := content.Validate(loader)
		if err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		printReport(cmd.OutOrStdout(), report)
		if !report.OK() {
			return fmt.Errorf("%d content error(s)", len(report.Errors))
		}
		return nil
	},
}

func printReport(w io.Writer, r *content.Report) {
	for _, e := range r.Errors {
		fmt.Fprintln(w, "error:  ", e)
	}
	for _, wn := range r.Warnings {
		fmt.Fprintln(w, "warning:", wn)
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
}
