// Package logger sets up the default slog logger for the server and the TUI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alkime/coach/internal/config"
)

// SetupLogger configures structured JSON logging for the server based on
// environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	return install(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: serverLevel(cfg),
	}))
}

// SetupFileLogger sends text logs to path, since the TUI owns the terminal.
// Close the returned file on exit.
func SetupFileLogger(path string, debug bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	//nolint:gosec // path comes from the working directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return install(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level(debug)})), f, nil
}

// SetupConsoleLogger is for one-shot CLI commands.
func SetupConsoleLogger(w io.Writer, debug bool) *slog.Logger {
	return install(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(debug)}))
}

func serverLevel(cfg *config.Config) slog.Level {
	return level(cfg.Env == "development" || cfg.LogLevel == "debug")
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func install(handler slog.Handler) *slog.Logger {
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
