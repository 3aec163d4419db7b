package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the runtime configuration shared by all commands.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default data
	// directory location.
	DBPath string

	// ContentDir holds manifest.json and scheda-<id>.json. Empty means the
	// content bundled with the binary.
	ContentDir string

	// LogFile receives logs while the TUI owns the terminal. Empty means
	// italienapp.log next to the database.
	LogFile string

	// LogLevel is the minimum level written. Default: warn.
	LogLevel slog.Level
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: slog.LevelWarn,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset or invalid values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("ITALIENAPP_DB"); p != "" {
		cfg.DBPath = p
	}
	if d := os.Getenv("ITALIENAPP_CONTENT"); d != "" {
		cfg.ContentDir = d
	}
	if f := os.Getenv("ITALIENAPP_LOG_FILE"); f != "" {
		cfg.LogFile = f
	}
	if l := os.Getenv("ITALIENAPP_LOG_LEVEL"); l != "" {
		if level, err := ParseLevel(l); err == nil {
			cfg.LogLevel = level
		}
	}

	return cfg
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LogPath returns the log file used while the TUI runs.
func (c Config) LogPath(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "italienapp.log")
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// OpenLogFile opens path for appending, creating it if needed.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
