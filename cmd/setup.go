package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/banktally/internal/config"
	"github.com/theirongolddev/banktally/internal/tui"
	"github.com/theirongolddev/banktally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg := loadConfigOrDefault()

	themeName := cfg.Appearance.Theme
	if !theme.Valid(themeName) {
		themeName = theme.FlexokiDark.Name
	}
	locale := cfg.Appearance.Locale

	form := huh.NewForm(tui.NewSetupFields(&themeName, &locale))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Appearance.Theme = themeName
	cfg.Appearance.Locale = locale

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `banktally setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
