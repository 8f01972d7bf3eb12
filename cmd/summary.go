package cmd

import (
	"context"
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly spending summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	client := newClient()
	month := selectedMonth()

	sum, err := client.GetSummary(context.Background(), month)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COUPLE BUDGET  %s", month.Label())))
	fmt.Println()

	rows := [][]string{
		{"Budget", cli.FormatOptAmount(sum.Budget)},
		{"Spent", cli.FormatAmount(sum.TotalUsed)},
		{"Remaining", cli.FormatOptAmount(sum.Remain)},
	}
	if sum.UsageRate != nil {
		rows = append(rows, []string{"Usage", fmt.Sprintf("%s  %s",
			cli.RenderBar(*sum.UsageRate/100, 20), cli.FormatRate(*sum.UsageRate))})
	}

	rows = append(rows, []string{"---"})
	for _, u := range sum.ByUser {
		rows = append(rows, []string{u.UserName, cli.FormatAmount(u.TotalUsed)})
	}

	if len(sum.ByCategory) > 0 {
		rows = append(rows, []string{"---"})
		for _, c := range sum.ByCategory {
			rows = append(rows, []string{c.Category, cli.FormatAmount(c.TotalUsed)})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Amount"},
		Rows:    rows,
	}))

	return nil
}
