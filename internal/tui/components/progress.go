package components

import (
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red based on budget utilization.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// UsageBar renders a labeled utilization bar with a trailing percentage.
func UsageBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(pct))).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(shown) + " " +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100))
}

// ShareBar renders a breakdown row: label, bar proportional to share of
// the maximum value, and the formatted amount.
func ShareBar(label string, value, maxValue int64, amount string, labelW, barWidth int) string {
	t := theme.Active

	share := 0.0
	if maxValue > 0 {
		share = float64(value) / float64(maxValue)
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		bar.ViewAs(share) + " " +
		amountStyle.Render(amount)
}
