package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel draws a framed box around lines using the current theme.
func Panel(lines ...string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
