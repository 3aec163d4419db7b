package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/config"
	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "italienapp",
	Short:        "Italian grammar practice in the terminal",
	Long:         "Italienapp: schede di grammatica italiana con teoria ed esercizi, offline nel terminale.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ITALIENAPP_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Directory with manifest.json and scheda files (overrides ITALIENAPP_CONTENT)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if d, _ := cmd.Flags().GetString("content"); d != "" {
		cfg.ContentDir = d
	}
	return cfg
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ITALIENAPP_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func newLoader(cfg config.Config) *content.Loader {
	return content.NewLoader(content.Dir(cfg.ContentDir))
}

// openProgress opens the database and the progress store on top of it.
// The caller closes the returned database.
func openProgress(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store.Store, *progress.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	ps := progress.Open(ctx, db.KV(),
		progress.WithLogger(logger),
		progress.WithAttemptLog(db.Attempts()),
	)
	return db, ps, nil
}

// cliLogger logs to stderr for non-interactive commands.
func cliLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return cfg.NewLogger(cmd.ErrOrStderr())
}
