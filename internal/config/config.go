// Package config loads server configuration from the environment.
// Subcommand flags override individual values.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the binary needs to run. When RemoteURL is set the
// remote document store is used instead of the local SQLite file.
type Config struct {
	Addr        string `env:"MEDSTOCK_ADDR, default=:8080"`
	DBPath      string `env:"MEDSTOCK_DB, default=medstock.sqlite3"`
	RemoteURL   string `env:"MEDSTOCK_REMOTE_URL"`
	RemoteToken string `env:"MEDSTOCK_REMOTE_TOKEN"`
	LogLevel    string `env:"MEDSTOCK_LOG_LEVEL, default=info"`
}

// Load reads the configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
