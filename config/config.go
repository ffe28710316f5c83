// Package config loads ManorQuest settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the entry point needs. Command-line flags
// override these after Load.
type Config struct {
	GameDir   string        `env:"MANORQUEST_GAME_DIR" envDefault:"games/smith_manor"`
	Seed      int64         `env:"MANORQUEST_SEED"` // 0 picks a random seed
	TurnDelay time.Duration `env:"MANORQUEST_TURN_DELAY" envDefault:"1s"`
	Fast      bool          `env:"MANORQUEST_FAST"`

	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"MANORQUEST_LOG_FILE"`
	Tracing     bool   `env:"MANORQUEST_TRACING"`
}

// ErrNegativeDelay is returned when MANORQUEST_TURN_DELAY is below zero.
var ErrNegativeDelay = errors.New("turn delay must not be negative")

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TurnDelay < 0 {
		return Config{}, fmt.Errorf("MANORQUEST_TURN_DELAY=%s: %w", cfg.TurnDelay, ErrNegativeDelay)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Delay is the pacing unit for narration. Fast mode turns pacing off.
func (c Config) Delay() time.Duration {
	if c.Fast {
		return 0
	}
	return c.TurnDelay
}

// Production reports whether logs should be machine-readable.
func (c Config) Production() bool {
	return c.Environment == "production"
}

// Level maps LOG_LEVEL onto slog. Unknown values mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
