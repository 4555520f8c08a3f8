// Package waveform draws live microphone amplitude as a bar chart.
package waveform

import (
	"math"
	"strings"
	"time"

	"github.com/alkime/coach/internal/tui/style"
	"github.com/alkime/coach/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Eighth-block glyphs, empty to full.
var blocks = []rune(" ▁▂▃▄▅▆▇█")

const (
	stepsPerRow = 8
	frameRate   = 50 * time.Millisecond
)

// TickMsg triggers a redraw.
type TickMsg struct{}

// Model renders the most recent samples from a Levels source, older samples
// on the left.
type Model struct {
	levels uictl.Levels[int16]
	width  int
	height int
}

// New creates a waveform width columns wide and height rows tall.
func New(levels uictl.Levels[int16], width, height int) Model {
	return Model{levels: levels, width: max(width, 1), height: max(height, 1)}
}

// SetWidth resizes the waveform, e.g. on a window resize.
func (m *Model) SetWidth(width int) {
	m.width = max(width, 1)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	var samples []int16
	if m.levels != nil {
		samples = m.levels.Read()
	}

	if len(samples) == 0 {
		return m.baseline()
	}

	heights := m.columnHeights(samples)
	rows := make([]string, m.height)

	for row := range m.height {
		floor := (m.height - 1 - row) * stepsPerRow
		line := make([]rune, m.width)

		for col, h := range heights {
			line[col] = blocks[min(max(h-floor, 0), stepsPerRow)]
		}

		rows[row] = style.Progress.Render(string(line))
	}

	return strings.Join(rows, "\n")
}

// columnHeights buckets samples into columns and maps each bucket's peak to
// 0..height*8 on a square-root curve so quiet speech is still visible.
func (m Model) columnHeights(samples []int16) []int {
	heights := make([]int, m.width)
	bucket := max(1, len(samples)/m.width)
	top := float64(m.height * stepsPerRow)

	for col := range heights {
		start := col * bucket
		if start >= len(samples) {
			break
		}

		peak := peakAmplitude(samples[start:min(start+bucket, len(samples))])
		heights[col] = min(int(math.Sqrt(peak/math.MaxInt16)*top), int(top))
	}

	return heights
}

func (m Model) baseline() string {
	rows := make([]string, m.height)
	for row := range rows {
		fill := " "
		if row == m.height-1 {
			fill = "▁"
		}

		rows[row] = style.Muted.Render(strings.Repeat(fill, m.width))
	}

	return strings.Join(rows, "\n")
}

func peakAmplitude(samples []int16) float64 {
	var peak float64
	for _, s := range samples {
		peak = max(peak, math.Abs(float64(s)))
	}

	return min(peak, math.MaxInt16)
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
