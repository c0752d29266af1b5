package cmd

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/cli"

	"github.com/spf13/cobra"
)

var flagPlain bool

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the total across all accounts",
	Args:  cobra.NoArgs,
	RunE:  runTotal,
}

func init() {
	totalCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print without digit grouping")
	rootCmd.AddCommand(totalCmd)
}

func runTotal(cmd *cobra.Command, _ []string) error {
	s, err := openCLISession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	total := s.book.View().Total
	if flagPlain {
		fmt.Println(cli.FormatPlain(total))
		return nil
	}
	fmt.Println(cli.FormatAmount(total, s.cfg.Appearance.Locale))
	return nil
}
