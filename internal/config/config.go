// Package config loads and saves banktally settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all banktally configuration.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// StorageConfig holds where the ledger is persisted.
type StorageConfig struct {
	Path string `toml:"path,omitempty"`
}

// AppearanceConfig holds theme and number formatting settings.
type AppearanceConfig struct {
	Theme  string `toml:"theme"`
	Locale string `toml:"locale"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// envOverrides are applied on top of the file config.
type envOverrides struct {
	DBPath   string `env:"BANKTALLY_DB"`
	Theme    string `env:"BANKTALLY_THEME"`
	Locale   string `env:"BANKTALLY_LOCALE"`
	LogLevel string `env:"BANKTALLY_LOG_LEVEL"`
	LogFile  string `env:"BANKTALLY_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme:  "flexoki-dark",
			Locale: "zh-TW",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "banktally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "banktally")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "banktally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "banktally")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.DBPath != "" {
		cfg.Storage.Path = o.DBPath
	}
	if o.Theme != "" {
		cfg.Appearance.Theme = o.Theme
	}
	if o.Locale != "" {
		cfg.Appearance.Locale = o.Locale
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DBPath returns the configured ledger database path or the default one.
func (c Config) DBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// LogPath returns the configured log file or the default one.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(DataDir(), "banktally.log")
}
