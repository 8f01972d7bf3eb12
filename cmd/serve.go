package cmd

import (
	"os"
	"path/filepath"

	"github.com/bio70000-dotcom/couple-budget/internal/server"
	"github.com/bio70000-dotcom/couple-budget/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr string
	flagServeDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the budget service locally",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8000", "Listen address")
	serveCmd.Flags().StringVar(&flagServeDB, "db", defaultDBPath(), "SQLite database path")
	rootCmd.AddCommand(serveCmd)
}

// defaultDBPath returns the XDG-compliant data file location.
func defaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "couple-budget", "budget.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "couple-budget", "budget.db")
}

func runServe(_ *cobra.Command, _ []string) error {
	st, err := store.Open(flagServeDB)
	if err != nil {
		return err
	}
	defer st.Close()

	return server.New(st).ListenAndServe(flagServeAddr)
}
