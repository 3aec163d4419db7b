package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/app"
	"github.com/italienapp/italienapp/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive app (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp opens the store, builds dependencies, and launches the TUI.
// Logs go to a file because the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := loadConfig(cmd)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	logFile, err := config.OpenLogFile(cfg.LogPath(dbPath))
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	loader := newLoader(cfg)
	if _, err := loader.Manifest(); err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	cfg.DBPath = dbPath
	db, ps, err := openProgress(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	logger.Info("starting", "db", dbPath, "content", cfg.ContentDir)

	return app.Run(app.Options{
		Loader:   loader,
		Progress: ps,
		Attempts: db.Attempts(),
		Logger:   logger,
		Splash:   !noSplash,
	})
}
