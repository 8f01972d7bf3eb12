package components

import (
	"strings"

	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Expenses", Key: 'e'},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var parts []string
	for i, tab := range Tabs {
		var rendered string
		if i == activeIdx {
			rendered = activeStyle.Render(tab.Name)
		} else {
			// Highlight the shortcut letter (always the first here)
			rendered = keyStyle.Render(string(tab.Name[0])) +
				inactiveStyle.Render(tab.Name[1:])
		}
		parts = append(parts, " "+rendered+" ")
	}

	bar := strings.Join(parts, sepStyle.Render("│"))

	barStyle := lipgloss.NewStyle().Width(width)
	underline := lipgloss.NewStyle().Foreground(t.Border).Width(width)

	return barStyle.Render(bar) + "\n" +
		underline.Render(strings.Repeat("─", width))
}
