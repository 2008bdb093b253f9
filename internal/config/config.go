package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-supplied defaults. Command-line flags
// take precedence over every field here.
type Config struct {
	Timezone      string `env:"VIBEX_TZ"`
	Chat          string `env:"VIBEX_CHAT"`
	SessionGapMin int    `env:"VIBEX_SESSION_GAP" envDefault:"0"`
}

// Load reads defaults from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("environment variables are invalid: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values that could not configure a run.
func (c *Config) Validate() error {
	if c.SessionGapMin < 0 {
		return fmt.Errorf("session gap must be non-negative, got %d", c.SessionGapMin)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone %q is invalid: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location resolves the configured timezone, falling back to the
// process's local zone when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q is invalid: %w", c.Timezone, err)
	}
	return loc, nil
}
