package screen

import (
	"regexp"
	"strings"

	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/lipgloss"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// RenderFeedback formats the markdown subset feedback uses: **bold** spans,
// "* " and "- " bullets and "#" headings. Everything else passes through.
func RenderFeedback(text string, width int) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "#"):
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			out = append(out, style.Section.Render(strings.ReplaceAll(heading, "**", "")))

		case strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "- "):
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			body := inline(trimmed[2:])
			bullet := strings.Repeat(" ", indent) + style.Bullet.Render("•") + " "
			out = append(out, hang(bullet, body, width))

		default:
			out = append(out, fit(inline(line), width))
		}
	}

	return strings.Join(out, "\n")
}

func inline(text string) string {
	return boldPattern.ReplaceAllStringFunc(text, func(m string) string {
		return style.Strong.Render(m[2 : len(m)-2])
	})
}

// hang wraps body so continuation lines align under the bullet text.
func hang(prefix, body string, width int) string {
	pw := lipgloss.Width(prefix)
	if width <= pw {
		return prefix + body
	}

	wrapped := lipgloss.NewStyle().Width(width - pw).Render(body)

	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, wrapped)
}

func fit(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}

	return lipgloss.NewStyle().Width(width).Render(text)
}
