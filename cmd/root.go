package cmd

import (
	"os"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/config"
	"github.com/bio70000-dotcom/couple-budget/internal/ledger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagYear   int
	flagMonth  int
	flagServer string
)

var rootCmd = &cobra.Command{
	Use:   "couple-budget",
	Short: "Household shared-expense tracker",
	Long:  "Track shared expenses, set a monthly budget, and see who spent what.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	// Local overrides like COUPLE_BUDGET_SERVER may live in a .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Year (default: current)")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", 0, "Month 1-12 (default: current)")
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Budget service URL")
}

// newClient builds the API client from flags, env, and config.
func newClient() *api.Client {
	if flagServer != "" {
		return api.NewClient(flagServer)
	}
	cfg, _ := config.Load()
	return api.NewClient(config.ServerURL(cfg))
}

// selectedMonth resolves the --year/--month flags, defaulting each to the
// current calendar value.
func selectedMonth() ledger.Month {
	m := ledger.CurrentMonth()
	if flagYear > 0 {
		m.Year = flagYear
	}
	if flagMonth >= 1 && flagMonth <= 12 {
		m.Month = flagMonth
	}
	return m
}
