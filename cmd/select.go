package cmd

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/cli"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <account>",
	Short: "Change the selected account and save",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	s, err := openCLISession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	i, err := resolveAccount(s.book.Catalog(), args[0])
	if err != nil {
		return err
	}
	if err := s.book.Select(i); err != nil {
		return err
	}
	if err := s.book.Save(cmd.Context()); err != nil {
		return fmt.Errorf("存檔失敗: %w", err)
	}

	v := s.book.View()
	fmt.Printf("  %s  %s\n", v.Account.Label, cli.FormatAmount(v.Balance, s.cfg.Appearance.Locale))
	return nil
}
