package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/banktally/internal/persist"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the stored balances and selection",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openCLISession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Erase every stored balance?").
			Description("The ledger starts again from zero on the next run.").
			Affirmative("Erase").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Println("  Nothing erased.")
			return nil
		}
	}

	if err := resetLedger(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Println("  Stored ledger erased.")
	return nil
}

// resetLedger deletes the persisted snapshot. The in-memory book is left as is.
func resetLedger(ctx context.Context, s *session) error {
	if err := persist.Clear(ctx, s.gw); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
