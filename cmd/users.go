package cmd

import (
	"context"
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/cli"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List household members",
	RunE:  runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(_ *cobra.Command, _ []string) error {
	users, err := newClient().ListUsers(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{fmt.Sprintf("%d", u.ID), u.Name})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name"},
		Rows:    rows,
	}))
	return nil
}
