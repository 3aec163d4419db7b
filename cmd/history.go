package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent exercise attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		schedaID, _ := cmd.Flags().GetString("scheda")

		cfg := loadConfig(cmd)
		m, err := newLoader(cfg).Manifest()
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		db, _, err := openProgress(cmd.Context(), cfg, cliLogger(cmd, cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.Attempts().Recent(cmd.Context(), store.QueryOpts{Limit: limit, SchedaID: schedaID})
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), m, events)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	historyCmd.Flags().String("scheda", "", "Only attempts of this scheda")
}

func printHistory(w io.Writer, m *content.Manifest, events []store.AttemptEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "Nessun esercizio svolto.")
		return
	}
	for _, ev := range events {
		outcome := fmt.Sprintf("%d/%d", ev.Score, ev.Total)
		if ev.OpenEnded {
			outcome = "fatto"
		}
		title := ""
		if info, ok := m.Info(ev.SchedaID); ok {
			title = info.Title
		}
		fmt.Fprintf(w, "%s  Scheda %-6s %-8s %-6s %s\n",
			ev.At.Local().Format("2006-01-02 15:04"), ev.SchedaID, ev.ExerciseID, outcome, title)
	}
}
