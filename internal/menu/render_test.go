package menu

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderMenuWidth(t *testing.T) {
	out := RenderMenu()

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		assert.LessOrEqual(t, lipgloss.Width(line), Width)
	}

	// Border and title lines fill the full fixed width.
	lines := strings.Split(out, "\n")
	assert.Equal(t, Width, lipgloss.Width(lines[0]))
	assert.Equal(t, Width, lipgloss.Width(lines[1]))
	assert.Equal(t, Width, lipgloss.Width(lines[2]))
}

func TestRenderMenuOptions(t *testing.T) {
	out := RenderMenu()

	assert.Contains(t, out, "1) Run Main Program")
	assert.Contains(t, out, "2) Run Installation")
	assert.Contains(t, out, "3) Run Validation")
	assert.Contains(t, out, "X) Exit Program")
	assert.Contains(t, out, "Chat-Linux-Gguf")
}
