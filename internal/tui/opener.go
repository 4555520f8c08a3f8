package tui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// OpenedMsg reports that an external viewer or player exited.
type OpenedMsg struct {
	Ref string
	Err error
}

// Opener hands a scenario image or take to something outside the TUI.
type Opener interface {
	Open(ref string) tea.Cmd
}

// SystemOpener runs Command (or the platform default) with the reference as
// its only argument. Inline data URLs are written to a temp file first.
type SystemOpener struct {
	Command string
	TempDir string
}

func (o SystemOpener) Open(ref string) tea.Cmd {
	target, err := o.materialize(ref)
	if err != nil {
		return func() tea.Msg { return OpenedMsg{Ref: ref, Err: err} }
	}

	//nolint:gosec // the command is chosen by the user
	c := exec.Command(o.command(), target)

	return tea.ExecProcess(c, func(err error) tea.Msg {
		return OpenedMsg{Ref: ref, Err: err}
	})
}

func (o SystemOpener) command() string {
	if o.Command != "" {
		return o.Command
	}

	if runtime.GOOS == "darwin" {
		return "open"
	}

	return "xdg-open"
}

// materialize returns something a desktop opener understands: a path or URL.
func (o SystemOpener) materialize(ref string) (string, error) {
	if !strings.HasPrefix(ref, "data:") {
		return ref, nil
	}

	data, ext, err := decodeDataURL(ref)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(o.TempDir, "coach-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return f.Name(), nil
}

// decodeDataURL decodes a base64 data URL and picks a file extension for its
// media type.
func decodeDataURL(ref string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, "", errors.New("unsupported data URL")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid data URL payload: %w", err)
	}

	ext := ".bin"
	if exts, err := mime.ExtensionsByType(strings.TrimSuffix(header, ";base64")); err == nil && len(exts) > 0 {
		ext = exts[0]
	}

	return data, ext, nil
}
