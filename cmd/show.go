package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/banktally/internal/cli"
	"github.com/theirongolddev/banktally/internal/ledger"
	"github.com/theirongolddev/banktally/internal/persist"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every account balance and the total",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	s, err := openCLISession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	locale := s.cfg.Appearance.Locale
	v := s.book.View()

	fmt.Println()
	fmt.Println(cli.RenderTitle("BANK BALANCES"))
	fmt.Println()

	accounts := s.book.Catalog().List()
	rows := make([][]string, 0, len(accounts)+2)
	for i, acct := range accounts {
		marker := "  "
		if i == v.Account.ID {
			marker = "● "
		}
		rows = append(rows, []string{
			marker + acct.Label,
			cli.FormatAmount(v.Balances[i], locale),
			cli.FormatPercent(cli.Share(v.Balances[i], v.Total)),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"累積存款", cli.FormatAmount(v.Total, locale), ""},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"金融機構", "存款金額", "Share"},
		Rows:      rows,
		Highlight: v.Account.ID,
	}))

	if s.kv != nil {
		if ts, ok, err := s.kv.UpdatedAt(cmd.Context(), persist.KeySavings); err == nil && ok {
			fmt.Printf("\n  Last saved %s\n", ts.Local().Format(time.DateTime))
		}
	}
	if s.book.Ledger().Origin() == ledger.OriginRecovered {
		fmt.Println("\n  Stored data was unreadable; showing an empty ledger.")
	}
	return nil
}
