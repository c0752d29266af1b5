package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/banktally/internal/catalog"
	"github.com/theirongolddev/banktally/internal/cli"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the tracked accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(_ *cobra.Command, _ []string) error {
	accounts := catalog.Default.List()
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.Label, strconv.Itoa(a.ID)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"金融機構", "Index"},
		Rows:      rows,
		Highlight: -1,
	}))
	return nil
}
