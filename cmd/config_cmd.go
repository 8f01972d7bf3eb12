package cmd

import (
	"fmt"
	"os"

	"github.com/bio70000-dotcom/couple-budget/internal/api"
	"github.com/bio70000-dotcom/couple-budget/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	serverURL := config.ServerURL(cfg)
	if serverURL == "" {
		serverURL = api.DefaultBaseURL
	}
	fmt.Printf("    URL: %s\n", serverURL)
	if env := os.Getenv(config.ServerEnvVar); env != "" {
		fmt.Printf("    (overridden by %s)\n", config.ServerEnvVar)
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultUser != "" {
		fmt.Printf("    Default user: %s\n", cfg.General.DefaultUser)
	} else {
		fmt.Println("    Default user: not set")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}
