// Package cmd implements the banktally CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/banktally/internal/book"
	"github.com/theirongolddev/banktally/internal/catalog"
	"github.com/theirongolddev/banktally/internal/config"
	"github.com/theirongolddev/banktally/internal/logging"
	"github.com/theirongolddev/banktally/internal/persist"
	"github.com/theirongolddev/banktally/internal/persist/memory"
	"github.com/theirongolddev/banktally/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagMemory bool
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "banktally",
	Short: "Bank balance tracker",
	Long:  "Track the balances of a fixed set of bank accounts and their running total.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv()
	},
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagMemory, "memory", false, "Use a scratch in-memory ledger; nothing is written to disk")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

// loadConfigOrDefault loads config, returning defaults on error.
// A broken config file must not lock the user out of their ledger.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %s\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// logLevelOrDefault returns the configured log level, or info with a warning
// on stderr when the level is unknown.
func logLevelOrDefault(cfg config.Config) string {
	if logging.ValidLevel(cfg.Log.Level) {
		return cfg.Log.Level
	}
	fmt.Fprintf(os.Stderr, "  Unknown log level %q, using info\n", cfg.Log.Level)
	return "info"
}

// session is an opened book plus the resources backing it.
type session struct {
	book      *book.Book
	cfg       config.Config
	storeName string
	gw        persist.Gateway
	kv        *store.KV // nil for --memory
	closers   []io.Closer
}

func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openSession opens the configured gateway and hydrates a book from it.
func openSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*session, error) {
	s := &session{cfg: cfg}

	var gw persist.Gateway
	if flagMemory {
		gw = memory.New()
		s.storeName = "memory"
	} else {
		path := flagDB
		if path == "" {
			path = cfg.DBPath()
		}
		kv, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		gw = kv
		s.kv = kv
		s.storeName = "sqlite"
		s.closers = append(s.closers, kv)
	}

	s.gw = gw
	s.book = book.Open(ctx, gw, catalog.Default, logger)
	return s, nil
}

// openCLISession is openSession for one-shot commands, logging warnings to stderr.
func openCLISession(ctx context.Context) (*session, error) {
	cfg := loadConfigOrDefault()
	logger, closer, err := logging.Stderr("warn", flagQuiet)
	if err != nil {
		return nil, err
	}
	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	s.closers = append([]io.Closer{closer}, s.closers...)
	return s, nil
}

// resolveAccount maps a CLI account reference to a catalog index.
func resolveAccount(cat catalog.Catalog, ref string) (int, error) {
	i, err := cat.Resolve(ref)
	if err != nil {
		return -1, fmt.Errorf("%w: %q (run `banktally accounts` for the list)", err, ref)
	}
	return i, nil
}
