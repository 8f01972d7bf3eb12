package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/cli"
	"github.com/bio70000-dotcom/couple-budget/internal/config"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagAddDate     string
	flagAddUser     int64
	flagAddCategory string
	flagAddMemo     string
	flagAddAmount   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Example: `  couple-budget add --amount 35,000 --category food --memo "groceries"
  couple-budget add --amount 12000 --user 2 --date 2026-08-15`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Expense date YYYY-MM-DD (default: today)")
	addCmd.Flags().Int64VarP(&flagAddUser, "user", "u", 0, "Member id (default: first member)")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", ledger.Categories[0],
		"One of: "+strings.Join(ledger.Categories, ", "))
	addCmd.Flags().StringVar(&flagAddMemo, "memo", "", "Optional memo")
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount (commas allowed)")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	client := newClient()
	ctx := context.Background()

	userID := flagAddUser
	if userID == 0 {
		users, err := client.ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return fmt.Errorf("no members registered on the service")
		}
		userID = users[0].ID

		cfg, _ := config.Load()
		for _, u := range users {
			if u.Name == cfg.General.DefaultUser {
				userID = u.ID
				break
			}
		}
	}

	date := flagAddDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	form := ledger.ExpenseForm{
		Date:     date,
		UserID:   userID,
		Category: flagAddCategory,
		Memo:     flagAddMemo,
		Amount:   flagAddAmount,
	}
	draft, err := form.Validate()
	if err != nil {
		return err
	}

	created, err := client.CreateExpense(ctx, api.ExpenseInput{
		Date:     draft.Date,
		UserID:   draft.UserID,
		Category: draft.Category,
		Memo:     draft.Memo,
		Amount:   draft.Amount,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Recorded #%d: %s spent %s on %s (%s)\n",
		created.ID, created.UserName, cli.FormatAmount(created.Amount),
		created.Category, created.Date)
	return nil
}
