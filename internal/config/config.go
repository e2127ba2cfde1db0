package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PROPGRID_"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	DBPath    string `env:"DB" envDefault:"propgrid.db"`
	AuthToken string `env:"AUTH_TOKEN"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Seed      bool   `env:"SEED" envDefault:"true"`
}

// Parse reads configuration from PROPGRID_* environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load is Parse that never fails: on a malformed variable it logs the
// problem and returns the defaults.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		slog.Warn("invalid configuration, using defaults", "error", err)
		return Defaults()
	}
	return cfg
}

// Defaults returns the configuration used when no variables are set.
func Defaults() Config {
	return Config{
		Addr:     ":8080",
		DBPath:   "propgrid.db",
		LogLevel: "info",
		Seed:     true,
	}
}

// Level parses LogLevel, falling back to info for unknown names.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
