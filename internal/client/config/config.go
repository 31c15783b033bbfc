// Package config loads client configuration from, in order of increasing
// precedence: built-in defaults, a JSON config file (-c/-config), environment
// variables, and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/vitrine-app/vitrine/internal/flagx"
	"github.com/vitrine-app/vitrine/internal/timex"
)

type Config struct {
	// ServerBaseURL is the base URL of the catalogue service.
	ServerBaseURL string `json:"server_base_url" env:"VITRINE_SERVER_BASE_URL"`

	// DatabasePath is the SQLite database file. The data-epoch token lives
	// beside it at ResetTokenPath.
	DatabasePath   string `json:"database_path" env:"VITRINE_DATABASE_PATH"`
	ResetTokenPath string `json:"reset_token_path" env:"VITRINE_RESET_TOKEN_PATH"`

	// SyncInterval is the period of the background reconciliation pass;
	// OnlineCheckInterval is the period of the reachability probe.
	SyncInterval        timex.Duration `json:"sync_interval" env:"VITRINE_SYNC_INTERVAL"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" env:"VITRINE_ONLINE_CHECK_INTERVAL"`
}

func loadDefaults() *Config {
	return &Config{
		ServerBaseURL:       "http://localhost:8080",
		DatabasePath:        "vitrine.db",
		ResetTokenPath:      "vitrine.reset",
		SyncInterval:        timex.Duration{Duration: 3 * time.Minute},
		OnlineCheckInterval: timex.Duration{Duration: 30 * time.Second},
	}
}

// Load builds the effective configuration from all sources.
func Load() (*Config, error) {
	cfg := loadDefaults()

	if path := flagx.JsonConfigFlags(); path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	parseFlags(cfg, os.Args[1:])
	return cfg, nil
}

func parseJson(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, cfg)
}

// parseFlags overrides cfg from the recognized command-line flags, leaving
// any other flags for their owners.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s"})

	var addr, db, interval string
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&addr, "a", "", "server base URL")
	fs.StringVar(&db, "d", "", "database file path")
	fs.StringVar(&interval, "s", "", "sync interval, e.g. 3m")
	_ = fs.Parse(args)

	if addr != "" {
		cfg.ServerBaseURL = addr
	}
	if db != "" {
		cfg.DatabasePath = db
	}
	if interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.SyncInterval = timex.Duration{Duration: d}
		}
	}
}
