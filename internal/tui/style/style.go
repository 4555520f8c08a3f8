// Package style defines lipgloss styles for the TUI.
package style

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Names omit a "Style" suffix since they are read through the package name.
var (
	// Header is the app banner shown above every screen.
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("238"))

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Section labels a block, e.g. "DOCTOR'S QUESTION".
	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	Question = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("255"))

	// Answer frames the user's submitted response.
	Answer = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(0, 1)

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	Recording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	Viewport = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	Progress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	Strong = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	Bullet = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))
)

// KeyHelp renders "[key] description" for a binding, followed by suffix.
func KeyHelp(binding key.Binding, suffix ...string) string {
	h := binding.Help()

	return Help.Render("[") + Key.Render(h.Key) + Help.Render("] ") + Help.Render(h.Desc) +
		strings.Join(suffix, "")
}

// KeyHelpLine renders the enabled bindings on one line.
func KeyHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Enabled() {
			parts = append(parts, KeyHelp(b))
		}
	}

	return strings.Join(parts, "  ")
}
