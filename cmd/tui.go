package cmd

import (
	"fmt"

	"github.com/theirongolddev/crmd/internal/tui"
	"github.com/theirongolddev/crmd/internal/tui/theme"

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
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(st)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
