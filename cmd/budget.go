package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/cli"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [amount]",
	Short: "Show or set the month's budget",
	Long: `Without an argument, shows the budget for the selected month.
With an amount (commas allowed), sets or replaces it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, args []string) error {
	client := newClient()
	month := selectedMonth()
	ctx := context.Background()

	if len(args) == 0 {
		b, err := client.GetBudget(ctx, month)
		if errors.Is(err, api.ErrNoBudget) {
			fmt.Printf("  No budget set for %s.\n", month.Label())
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("  Budget for %s: %s\n", month.Label(), cli.FormatAmount(b.Amount))
		return nil
	}

	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}

	if err := client.UpsertBudget(ctx, month, amount); err != nil {
		return err
	}

	fmt.Printf("  Budget for %s set to %s\n", month.Label(), cli.FormatAmount(amount))
	return nil
}
