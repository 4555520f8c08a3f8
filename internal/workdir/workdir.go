// Package workdir locates the coach's per-user working directory.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const logFile = "coach.log"

// Root returns the base directory for all coach working files:
//
//	$HOME/Documents/Alkime/Coach
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, "Documents", "Alkime", "Coach"), nil
}

// MediaDir holds generated scenario images and rehearsal takes.
func MediaDir() (string, error) {
	return under("media")
}

func LogPath() (string, error) {
	return under(logFile)
}

// Prep ensures the root and media directories exist.
func Prep() error {
	dir, err := MediaDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}

	return nil
}

func under(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, name), nil
}
