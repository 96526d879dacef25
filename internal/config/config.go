// Package config reads settings from the environment, after an optional .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Backend string `env:"AGENDA_BACKEND" envDefault:"file"`

	// text files
	DataDir      string `env:"AGENDA_DATA_DIR" envDefault:"data"`
	UsersFile    string `env:"AGENDA_USERS_FILE" envDefault:"users.csv"`
	MeetingsFile string `env:"AGENDA_MEETINGS_FILE" envDefault:"meetings.csv"`

	// postgres
	DatabaseURL string `env:"DATABASE_URL"`
	Migration   string `env:"AGENDA_MIGRATION" envDefault:"db/migrations/001_init.sql"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"data/logs.txt"`

	LoginRPS   float64 `env:"LOGIN_RPS" envDefault:"0.2"`
	LoginBurst int     `env:"LOGIN_BURST" envDefault:"5"`

	FlushTimeout time.Duration `env:"FLUSH_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if present) and the environment. Variables already set win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" || c.UsersFile == "" || c.MeetingsFile == "" {
			return errors.New("data dir and file names are required")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.LoginRPS <= 0 || c.LoginBurst <= 0 {
		return errors.New("LOGIN_RPS and LOGIN_BURST must be positive")
	}
	return nil
}
