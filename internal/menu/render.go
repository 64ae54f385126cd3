package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Width is the fixed column width every border and title line is rendered
// at. The terminal is resized to match when possible.
const Width = 107

const SelectionPrompt = "Selection; Menu Options = 1-3, Exit Program = X: "

var (
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
)

func border() string {
	return borderStyle.Render(strings.Repeat("=", Width))
}

// RenderMenu produces the full bordered menu, always exactly Width columns
// across.
func RenderMenu() string {
	var b strings.Builder

	b.WriteString(border())
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(lipgloss.PlaceHorizontal(Width, lipgloss.Center, "Chat-Linux-Gguf: Menu")))
	b.WriteString("\n")
	b.WriteString(border())
	b.WriteString("\n\n")

	options := []string{
		"1) Run Main Program",
		"2) Run Installation",
		"3) Run Validation",
		"",
		"X) Exit Program",
	}
	for _, opt := range options {
		if opt == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(optionStyle.Render("    " + opt))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(border())
	b.WriteString("\n")

	return b.String()
}
