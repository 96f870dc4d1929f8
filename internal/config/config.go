// Package config loads and saves spend configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/spend/internal/model"
)

// Environment overrides.
const (
	EnvDBPath   = "SPEND_DB"
	EnvCurrency = "SPEND_CURRENCY"
)

// Config holds all spend configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Ledger     LedgerConfig     `toml:"ledger"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int    `toml:"default_days"`
	DBPath      string `toml:"db_path,omitempty"`
}

// LedgerConfig holds entry-form and display settings.
type LedgerConfig struct {
	Currency   string   `toml:"currency"`
	Categories []string `toml:"categories"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 30,
		},
		Ledger: LedgerConfig{
			Currency:   "PHP",
			Categories: append([]string(nil), model.DefaultCategories...),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spend")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spend")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the ledger.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spend")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spend")
}

// DefaultDBPath is where the ledger lives when nothing overrides it.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "expenses.db")
}

// LoadEnv reads a .env file from the working directory if one exists.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	if c.General.DefaultDays < 1 {
		c.General.DefaultDays = 30
	}
	c.Ledger.Currency = strings.ToUpper(strings.TrimSpace(c.Ledger.Currency))
	if c.Ledger.Currency == "" {
		c.Ledger.Currency = "PHP"
	}

	cats := c.Ledger.Categories[:0]
	for _, cat := range c.Ledger.Categories {
		if cat = strings.TrimSpace(cat); cat != "" {
			cats = append(cats, cat)
		}
	}
	c.Ledger.Categories = cats
	if len(c.Ledger.Categories) == 0 {
		c.Ledger.Categories = append([]string(nil), model.DefaultCategories...)
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetDBPath returns the ledger path from env var, config, or the default,
// in that order. Command-line flags are applied by the caller.
func GetDBPath(cfg Config) string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return expandHome(cfg.General.DBPath)
	}
	return DefaultDBPath()
}

// GetCurrency returns the display currency code from env var or config.
func GetCurrency(cfg Config) string {
	if c := strings.TrimSpace(os.Getenv(EnvCurrency)); c != "" {
		return strings.ToUpper(c)
	}
	return cfg.Ledger.Currency
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
