package tui

import (
	"fmt"
	"strings"

	"github.com/bio70000-dotcom/couple-budget/internal/cli"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// listChromeHeight is the rows consumed around the expense list: column
// header, underline, and the totals footer.
const listChromeHeight = 3

func (a App) renderExpensesTab(cw, contentH int) string {
	t := theme.Active

	if len(a.st.Expenses) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return "\n" + dim.Render("  No expenses in "+a.st.Month.Label()+".  Press a to add one.")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	memoW := cw - 46
	if memoW < 8 {
		memoW = 8
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"  %-11s %-10s %-10s %-*s %12s", "Date", "Member", "Category", memoW, "Memo", "Amount")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", cw)))
	b.WriteString("\n")

	// Window the list so the cursor is always on screen
	visible := contentH - listChromeHeight
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if a.expCursor >= visible {
		offset = a.expCursor - visible + 1
	}

	end := offset + visible
	if end > len(a.st.Expenses) {
		end = len(a.st.Expenses)
	}

	for i := offset; i < end; i++ {
		e := a.st.Expenses[i]
		memo := ""
		if e.Memo != nil {
			memo = *e.Memo
		}

		line := fmt.Sprintf("%-11s %-10s %-10s %-*s %12s",
			e.Date,
			truncStr(e.UserName, 10),
			e.Category,
			memoW, truncStr(memo, memoW),
			cli.FormatAmount(e.Amount))

		if i == a.expCursor {
			b.WriteString(cursorStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	var total int64
	for _, e := range a.st.Expenses {
		total += e.Amount
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d expenses · total %s",
		len(a.st.Expenses), cli.FormatAmount(total))))

	return b.String()
}
