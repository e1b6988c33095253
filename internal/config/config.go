// Package config loads application settings from an optional YAML file with
// environment-variable overrides. Every field has a usable default so the
// server runs with no configuration at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`

	GameDataURL     string `yaml:"game_data_url"`
	ExchangeBaseURL string `yaml:"exchange_base_url"`

	// Upstream request budget: BudgetUnits units per BudgetWindowSec seconds.
	BudgetUnits     int `yaml:"budget_units"`
	BudgetWindowSec int `yaml:"budget_window_sec"`

	// Cache TTLs in seconds.
	StaticTTLSec int `yaml:"static_ttl_sec"`
	PriceTTLSec  int `yaml:"price_ttl_sec"`

	// Exchange hub map coordinates, used as the default distance reference.
	ExchangeX float64 `yaml:"exchange_x"`
	ExchangeY float64 `yaml:"exchange_y"`

	BackupIntervalSec int `yaml:"backup_interval_sec"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns a Config with production defaults.
func Default() *Config {
	return &Config{
		Port:              8001,
		DataDir:           "data",
		GameDataURL:       "https://api.g2.galactictycoons.com/gamedata.json",
		ExchangeBaseURL:   "https://api.g2.galactictycoons.com/public/exchange",
		BudgetUnits:       100,
		BudgetWindowSec:   300,
		StaticTTLSec:      86400,
		PriceTTLSec:       60,
		ExchangeX:         3334.0,
		ExchangeY:         1425.0,
		BackupIntervalSec: 300,
		CORSOrigins:       []string{"*"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then GT_* environment variables. A missing file is not an error;
// a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	envInt("GT_PORT", &c.Port)
	envStr("GT_DATA_DIR", &c.DataDir)
	envStr("GT_GAME_DATA_URL", &c.GameDataURL)
	envStr("GT_EXCHANGE_BASE_URL", &c.ExchangeBaseURL)
	envInt("GT_BUDGET_UNITS", &c.BudgetUnits)
	envInt("GT_BUDGET_WINDOW_SEC", &c.BudgetWindowSec)
	envInt("GT_STATIC_TTL_SEC", &c.StaticTTLSec)
	envInt("GT_PRICE_TTL_SEC", &c.PriceTTLSec)
	envFloat("GT_EXCHANGE_X", &c.ExchangeX)
	envFloat("GT_EXCHANGE_Y", &c.ExchangeY)
	envInt("GT_BACKUP_INTERVAL_SEC", &c.BackupIntervalSec)
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.BudgetUnits <= 0 || c.BudgetWindowSec <= 0 {
		return fmt.Errorf("invalid budget %d/%ds", c.BudgetUnits, c.BudgetWindowSec)
	}
	if c.PriceTTLSec <= 0 || c.StaticTTLSec <= 0 {
		return fmt.Errorf("invalid cache ttl static=%ds price=%ds", c.StaticTTLSec, c.PriceTTLSec)
	}
	return nil
}

// BudgetWindow returns the budget window as a duration.
func (c *Config) BudgetWindow() time.Duration {
	return time.Duration(c.BudgetWindowSec) * time.Second
}

// PriceTTL returns the price cache TTL as a duration.
func (c *Config) PriceTTL() time.Duration {
	return time.Duration(c.PriceTTLSec) * time.Second
}

// StaticTTL returns the static data cache TTL as a duration.
func (c *Config) StaticTTL() time.Duration {
	return time.Duration(c.StaticTTLSec) * time.Second
}

// BackupInterval returns the snapshot backup interval as a duration.
func (c *Config) BackupInterval() time.Duration {
	return time.Duration(c.BackupIntervalSec) * time.Second
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
