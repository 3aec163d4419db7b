package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall and per-category progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		m, err := newLoader(cfg).Manifest()
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		db, ps, err := openProgress(cmd.Context(), cfg, cliLogger(cmd, cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		printStats(cmd.OutOrStdout(), m, ps)
		return nil
	},
}

func printStats(w io.Writer, m *content.Manifest, ps *progress.Store) {
	overall := ps.OverallProgress(m)
	inProgress := 0
	for _, id := range m.Order {
		if ps.SchedaStatus(id, m.Schede[id].ExerciseCount) == progress.InProgress {
			inProgress++
		}
	}

	fmt.Fprintf(w, "Progresso complessivo: %d/%d schede completate (%d%%)\n",
		overall.Completed, overall.Total, overall.Percentage)
	fmt.Fprintf(w, "In corso: %d\n", inProgress)
	if id, ok := ps.LastActive(); ok {
		fmt.Fprintf(w, "Ultima scheda: %s · %s\n", id, m.Schede[id].Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-24s  %7s  %5s  %s\n", "Categoria", "Schede", "%", "")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, c := range m.Categories {
		sum := ps.CategoryProgress(m, c)
		fmt.Fprintf(w, "%-24s  %7s  %4d%%  %s\n",
			c.Name, fmt.Sprintf("%d/%d", sum.Completed, sum.Total), sum.Percentage, textBar(sum.Percentage, 20))
	}
}

// textBar draws a plain progress bar for non-interactive output.
func textBar(percent, width int) string {
	filled := min(max(percent*width/100, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
