package components

import (
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: keys on the left, the
// server endpoint and an optional state note on the right.
func RenderStatusBar(width int, server, note string) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)
	noteStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	left := " [←/→]month  [a]dd  [b]udget  [r]eload  [?]help  [q]uit"
	right := server + " "
	if note != "" {
		right = noteStyle.Render(note) + "  " + right
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
