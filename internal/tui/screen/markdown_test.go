package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFeedback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "bold spans lose their markers",
			input:    "**Accuracy & Key Messages**: good use of data",
			contains: []string{"Accuracy & Key Messages: good use of data"},
			absent:   []string{"**"},
		},
		{
			name:     "star and dash bullets",
			input:    "* first point\n- second point",
			contains: []string{"• first point", "• second point"},
		},
		{
			name:     "headings",
			input:    "## **Overall**",
			contains: []string{"Overall"},
			absent:   []string{"#", "**"},
		},
		{
			name:     "plain text passes through",
			input:    "Nice work.",
			contains: []string{"Nice work."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderFeedback(tt.input, 0)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}

			for _, unwanted := range tt.absent {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestRenderFeedback_WrapsBullets(t *testing.T) {
	got := RenderFeedback("* "+strings.Repeat("word ", 12), 20)
	lines := strings.Split(got, "\n")

	assert.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "• "))
	assert.True(t, strings.HasPrefix(lines[1], "  word"))
}

func TestDescribeImage(t *testing.T) {
	assert.Equal(t, "/media/scenarios/a.jpg", describeImage("/media/scenarios/a.jpg"))
	assert.Equal(t, "inline image (0 KB)", describeImage("data:image/png;base64,AAAA"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 KB", formatBytes(512*1024, 0))
	assert.Equal(t, "1024 KB / 2048 KB", formatBytes(1<<20, 2<<20))
	assert.InDelta(t, 0.5, fraction(1, 2), 0.001)
	assert.InDelta(t, 1.0, fraction(3, 2), 0.001)
	assert.Zero(t, fraction(3, 0))
}
