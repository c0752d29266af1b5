// Package logging builds the leveled logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Field names used across packages.
const (
	FieldAccount  = "account"
	FieldAmount   = "amount"
	FieldTotal    = "total"
	FieldRevision = "revision"
	FieldOrigin   = "origin"
	FieldError    = "err"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "banktally",
	}), nil
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, err := log.ParseLevel(level)
	return err == nil
}

// OpenFile returns a logger appending to path. The TUI owns the terminal,
// so interactive sessions log here instead of to stderr.
func OpenFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	//nolint:gosec // log path is configured by the local user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Stderr returns a logger for one-shot CLI commands. quiet limits output to errors.
func Stderr(level string, quiet bool) (*log.Logger, io.Closer, error) {
	if quiet {
		level = "error"
	}
	logger, err := New(os.Stderr, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, nopCloser{}, nil
}
