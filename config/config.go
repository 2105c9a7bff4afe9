// Package config loads eventx settings from the environment.
package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env/v11"
	"github.com/saylorsolutions/eventx/kv"
	"github.com/saylorsolutions/eventx/slogx"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config describes how to open the binding store and how to log.
type Config struct {
	Store      string `env:"EVENTX_STORE" envDefault:"sqlite"`
	SQLitePath string `env:"EVENTX_SQLITE_PATH" envDefault:"eventx.db"`
	KeyPrefix  string `env:"EVENTX_KEY_PREFIX"`
	LogLevel   string `env:"EVENTX_LOG_LEVEL" envDefault:"info"`
	// LogFormat is left empty to let the caller pick a format based on where output goes.
	LogFormat string `env:"EVENTX_LOG_FORMAT"`
}

// Load parses the environment into a [Config] and validates it.
func Load() (Config, error) {
	conf, err := Parse()
	if err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

// Parse reads the environment without validating, so that callers can apply overrides first.
func Parse() (Config, error) {
	var conf Config
	if err := env.Parse(&conf); err != nil {
		return conf, fmt.Errorf("parse env: %w", err)
	}
	return conf, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Store) {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite store requires a path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store '%s'", ErrInvalidConfig, c.Store)
	}
	if err := kv.ValidatePrefix(c.KeyPrefix); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := slogx.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.LogFormat) > 0 {
		if _, err := slogx.ParseFormat(c.LogFormat); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
