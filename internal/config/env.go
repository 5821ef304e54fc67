package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the RINGSIM_* process settings. Command-line flags win over these.
type Env struct {
	ConfigDir string `env:"RINGSIM_CONFIG_DIR" envDefault:"assets"`
	Seed      int64  `env:"RINGSIM_SEED"`
	Runs      int    `env:"RINGSIM_RUNS" envDefault:"1"`
	Workers   int    `env:"RINGSIM_WORKERS" envDefault:"8"`
	LogLevel  string `env:"RINGSIM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
