package cmd

import (
	"fmt"

	"github.com/bio70000-dotcom/couple-budget/internal/config"
	"github.com/bio70000-dotcom/couple-budget/internal/tui"
	"github.com/bio70000-dotcom/couple-budget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(newClient())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
