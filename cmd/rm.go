package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an expense by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("id must be an integer: %q", args[0])
	}

	if err := newClient().DeleteExpense(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("  Deleted expense #%d\n", id)
	return nil
}
