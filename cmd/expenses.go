package cmd

import (
	"context"
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagExpUser     int64
	flagExpCategory string
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List the month's expenses",
	RunE:  runExpenses,
}

func init() {
	expensesCmd.Flags().Int64VarP(&flagExpUser, "user", "u", 0, "Filter by member id")
	expensesCmd.Flags().StringVarP(&flagExpCategory, "category", "c", "", "Filter by category")
	rootCmd.AddCommand(expensesCmd)
}

func runExpenses(_ *cobra.Command, _ []string) error {
	client := newClient()
	month := selectedMonth()

	expenses, err := client.ListExpenses(context.Background(), month, api.ExpenseFilter{
		UserID:   flagExpUser,
		Category: flagExpCategory,
	})
	if err != nil {
		return err
	}

	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses in %s.\n", month.Label())
		return nil
	}

	rows := make([][]string, 0, len(expenses)+2)
	var total int64
	for _, e := range expenses {
		memo := ""
		if e.Memo != nil {
			memo = *e.Memo
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.Date,
			e.UserName,
			e.Category,
			memo,
			cli.FormatAmount(e.Amount),
		})
		total += e.Amount
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "", "", "Total", cli.FormatAmount(total)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   month.Label(),
		Headers: []string{"ID", "Date", "Member", "Category", "Memo", "Amount"},
		Rows:    rows,
	}))

	return nil
}
