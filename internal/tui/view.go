package tui

import (
	"fmt"
	"strings"

	"github.com/bio70000-dotcom/couple-budget/internal/tui/components"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.notice != "" {
		return a.viewNotice()
	}

	if f := a.openForm(); f != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, f.View())
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.st.Summary == nil && a.st.Loading {
		return a.viewLoading()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  couple-budget needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ couple-budget"))
	b.WriteString(subtitleStyle.Render(" · Shared Expenses"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + a.st.Month.Label() + "..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

// viewNotice renders a blocking notification card. Any key dismisses it.
func (a App) viewNotice() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Orange).
		Padding(1, 3)

	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := msgStyle.Render(a.notice) + "\n\n" +
		dimStyle.Render("Press any key to continue")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"← → / h l", "Previous / next month"},
		{"o e / tab", "Switch tabs"},
		{"j k", "Move in the expense list"},
		{"a", "Add an expense"},
		{"b", "Set the monthly budget"},
		{"r", "Reload data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + a.renderMonthLine(w)

	note := ""
	if a.st.Loading {
		note = a.spinner.View() + " loading"
	}
	statusBar := components.RenderStatusBar(w, a.client.BaseURL(), note)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.st.LoadErr != "" {
		content = a.renderLoadError(cw)
	}
	switch a.activeTab {
	case 0:
		content += a.renderOverviewTab(cw)
	case 1:
		content += a.renderExpensesTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// renderMonthLine renders the month navigator line under the tab bar.
func (a App) renderMonthLine(w int) string {
	t := theme.Active

	arrowStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	monthStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	line := arrowStyle.Render(" ◀ ") +
		monthStyle.Render(a.st.Month.Label()) +
		arrowStyle.Render(" ▶")

	return lipgloss.NewStyle().Width(w).Render(line)
}

// renderLoadError renders the combined-load error banner. The data below
// it is the last successfully loaded snapshot.
func (a App) renderLoadError(cw int) string {
	t := theme.Active

	banner := lipgloss.NewStyle().
		Foreground(t.Red).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Width(cw - 2).
		Padding(0, 1)

	return banner.Render("Load failed: "+truncStr(a.st.LoadErr, cw-20)) + "\n"
}
