package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings shared by the CLI and the client facade.
type Env struct {
	StoreKind string `env:"PHENOS_STORE" envDefault:"memory"`
	DBPath    string `env:"PHENOS_DB_PATH" envDefault:"phenos.db"`
	LogLevel  string `env:"PHENOS_LOG_LEVEL" envDefault:"info"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
