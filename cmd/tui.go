package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spend/internal/log"
	"github.com/theirongolddev/spend/internal/store"
	"github.com/theirongolddev/spend/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Log lines would tear the alt screen.
	s, err := store.Open(dbPath(), store.WithLogger(log.Discard()), store.WithClock(now))
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = s.Close() }()

	// Force TrueColor so background styling produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s, tui.Options{
		Days:       flagDays,
		Categories: cfg.Ledger.Categories,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
