package tui

import (
	"fmt"
	"strings"

	"github.com/bio70000-dotcom/couple-budget/internal/cli"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/components"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	sum := a.st.Summary
	if sum == nil {
		dim := lipgloss.NewStyle().Foreground(theme.Active.TextDim)
		return "\n" + dim.Render("  No data yet.")
	}

	var b strings.Builder

	// Top row: budget / spent / remaining
	cards := []struct{ Label, Value, Note string }{
		{"Budget", cli.FormatOptAmount(sum.Budget), ""},
		{"Spent", cli.FormatAmount(sum.TotalUsed), fmt.Sprintf("%d expenses", len(a.st.Expenses))},
		{"Remaining", cli.FormatOptAmount(sum.Remain), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Usage bar when a budget is set
	if sum.Budget != nil && sum.UsageRate != nil {
		pct := *sum.UsageRate / 100
		barW := components.CardInnerWidth(cw) - 18
		if barW < 10 {
			barW = 10
		}
		body := components.UsageBar("Used", pct, 6, barW)
		b.WriteString(components.ContentCard("Budget usage", body, cw))
		b.WriteString("\n")
	}

	// Breakdown cards side by side
	widths := components.LayoutRow(cw, 2)
	byUser := components.ContentCard("By member",
		a.renderBreakdownUsers(components.CardInnerWidth(widths[0])), widths[0])
	byCategory := components.ContentCard("By category",
		a.renderBreakdownCategories(components.CardInnerWidth(widths[1])), widths[1])
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, byUser, byCategory))

	return b.String()
}

func (a App) renderBreakdownUsers(innerW int) string {
	sum := a.st.Summary
	if len(sum.ByUser) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("no members")
	}

	labelW, maxTotal := 0, int64(0)
	for _, row := range sum.ByUser {
		if len(row.UserName) > labelW {
			labelW = len(row.UserName)
		}
		if row.TotalUsed > maxTotal {
			maxTotal = row.TotalUsed
		}
	}

	barW := innerW - labelW - 14
	if barW < 6 {
		barW = 6
	}

	lines := make([]string, 0, len(sum.ByUser))
	for _, row := range sum.ByUser {
		lines = append(lines, components.ShareBar(
			row.UserName, row.TotalUsed, maxTotal,
			cli.FormatAmount(row.TotalUsed), labelW, barW))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderBreakdownCategories(innerW int) string {
	sum := a.st.Summary
	if len(sum.ByCategory) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("no spending yet")
	}

	labelW, maxTotal := 0, int64(0)
	for _, row := range sum.ByCategory {
		if len(row.Category) > labelW {
			labelW = len(row.Category)
		}
		if row.TotalUsed > maxTotal {
			maxTotal = row.TotalUsed
		}
	}

	barW := innerW - labelW - 14
	if barW < 6 {
		barW = 6
	}

	lines := make([]string, 0, len(sum.ByCategory))
	for _, row := range sum.ByCategory {
		lines = append(lines, components.ShareBar(
			row.Category, row.TotalUsed, maxTotal,
			cli.FormatAmount(row.TotalUsed), labelW, barW))
	}
	return strings.Join(lines, "\n")
}
