package cmd

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/config"
	"github.com/theirongolddev/banktally/internal/logging"
	"github.com/theirongolddev/banktally/internal/tui"
	"github.com/theirongolddev/banktally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive ledger screen",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	logger, logFile, err := logging.OpenFile(cfg.LogPath(), logLevelOrDefault(cfg))
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s.book, tui.Options{
		Locale:    cfg.Appearance.Locale,
		StoreName: s.storeName,
		NeedSetup: !config.Exists(),
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
