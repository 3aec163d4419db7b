package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all schede with their status",
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

		printList(cmd.OutOrStdout(), m, ps)
		return nil
	},
}

func printList(w io.Writer, m *content.Manifest, ps *progress.Store) {
	listed := make(map[string]bool)
	printRow := func(id string) {
		info := m.Schede[id]
		st := ps.SchedaStatus(id, info.ExerciseCount)
		fmt.Fprintf(w, "  %s %-6s  %-36s  %s\n", dot(st), id, info.Title, st)
	}

	for _, c := range m.Categories {
		fmt.Fprintln(w, strings.TrimSpace(c.Icon+" "+c.Name))
		for _, id := range c.Schede {
			if _, ok := m.Info(id); !ok {
				continue
			}
			listed[id] = true
			printRow(id)
		}
		fmt.Fprintln(w)
	}

	var rest []string
	for _, id := range m.Order {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 0 {
		fmt.Fprintln(w, "Altre schede")
		for _, id := range rest {
			printRow(id)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d schede\n", len(m.Order))
}

func dot(st progress.Status) string {
	switch st {
	case progress.Completed:
		return "●"
	case progress.InProgress:
		return "◐"
	default:
		return "○"
	}
}
