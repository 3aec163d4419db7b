package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress, settings and attempt history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Cancellare tutti i progressi? [s/N] ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Annullato.")
			return nil
		}

		cfg := loadConfig(cmd)
		db, ps, err := openProgress(cmd.Context(), cfg, cliLogger(cmd, cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := ps.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		if err := db.Attempts().Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progressi cancellati.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// confirm asks question on out and reports whether the answer on in is yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "s", "si", "sì", "y", "yes":
		return true
	}
	return false
}
