// Package config loads runtime settings from the environment. Command-line
// flags override whatever is loaded here.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the onirim commands.
type Config struct {
	Games    int    `env:"ONIRIM_GAMES" envDefault:"1000"`
	Workers  int    `env:"ONIRIM_WORKERS" envDefault:"4"`
	Seed     int64  `env:"ONIRIM_SEED"`
	Actor    string `env:"ONIRIM_ACTOR" envDefault:"evaluate"`
	Decks    string `env:"ONIRIM_DECKS"` // deck YAML file; empty uses the built-in decks
	Deck     string `env:"ONIRIM_DECK" envDefault:"basic"`
	DBPath   string `env:"ONIRIM_DB" envDefault:"~/.onirim/runs.db"`
	LogLevel string `env:"ONIRIM_LOG_LEVEL" envDefault:"info"`
	Addr     string `env:"ONIRIM_ADDR" envDefault:"localhost:7777"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Games < 0 {
		return fmt.Errorf("config: games must not be negative, got %d", c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
