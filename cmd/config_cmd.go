package cmd

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/config"

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

	dbPath := cfg.DBPath()
	if flagDB != "" {
		dbPath = flagDB
	}
	fmt.Println("  [Storage]")
	fmt.Printf("    Database: %s\n", dbPath)
	if flagMemory {
		fmt.Println("    (ignored: --memory is set)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:  %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Locale: %s\n", cfg.Appearance.Locale)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  Run `banktally setup` to reconfigure.")
	return nil
}
