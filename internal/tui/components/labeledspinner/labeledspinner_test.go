package labeledspinner_test

import (
	"testing"

	"github.com/alkime/coach/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner_View(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Generating new training scenario...")

	assert.Equal(t, spinner.Dot.Frames[0]+" Generating new training scenario...", m.View())

	m = m.WithHint("This usually takes a few seconds")
	assert.Contains(t, m.View(), "\n\nThis usually takes a few seconds")
}

func TestLabeledSpinner_Relabel(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "first").Relabel("second")

	assert.Equal(t, "second", m.Label())
	assert.Contains(t, m.View(), "second")
	assert.NotContains(t, m.View(), "first")
}

func TestLabeledSpinner_Animates(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Loading")
	assert.IsType(t, spinner.TickMsg{}, m.Tick())

	m, cmd := m.Update(spinner.TickMsg{})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), spinner.Dot.Frames[1])

	m, _ = m.Update(spinner.TickMsg{})
	assert.Contains(t, m.View(), spinner.Dot.Frames[2])

	_, cmd = m.Update("ignored")
	assert.Nil(t, cmd)
}
