// Package screen holds one bubbletea model per trainer screen. Screens never
// call the trainer themselves; they emit the messages below and the root
// model turns them into controller actions.
package screen

import tea "github.com/charmbracelet/bubbletea"

// StartMsg asks for the first scenario.
type StartMsg struct{}

// SubmitMsg carries the typed answer.
type SubmitMsg struct {
	Answer string
}

// NextMsg asks for a fresh scenario after feedback.
type NextMsg struct{}

// RetryMsg retries the failed request.
type RetryMsg struct{}

// OpenMsg asks to open a scenario image or rehearsal take outside the TUI.
type OpenMsg struct {
	Ref string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
