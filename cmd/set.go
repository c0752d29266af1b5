package cmd

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/book"
	"github.com/theirongolddev/banktally/internal/cli"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <account> <amount>",
	Short: "Set an account balance and save",
	Long: "Select <account> (label, index 0-9, or bank code such as 808), " +
		"set its balance to <amount>, and save the ledger.",
	Example: "  banktally set 808 250.5\n  banktally set 0 1000",
	Args:    cobra.ExactArgs(2),
	RunE:    runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
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

	r, err := s.book.Modify(args[1])
	if err != nil {
		if book.IsInvalidAmount(err) {
			return fmt.Errorf("請輸入有效的存款金額: %w", err)
		}
		return err
	}

	if err := s.book.Save(cmd.Context()); err != nil {
		return fmt.Errorf("存檔失敗: %w", err)
	}

	locale := s.cfg.Appearance.Locale
	fmt.Printf("  修改成功  %s  %s\n", r.Account.Label, cli.FormatAmount(r.Amount, locale))
	fmt.Printf("  累積存款  %s\n", cli.FormatAmount(s.book.View().Total, locale))
	return nil
}
