// Package config holds the runtime settings for the NoteNest binaries.
// Settings come from defaults, an optional YAML file, then environment
// variables, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config drives both the service (`serve`) and the client commands.
type Config struct {
	// ListenAddr is where `serve` binds its REST API.
	ListenAddr string `yaml:"listen_addr"`
	// DBPath is the SQLite file backing the service.
	DBPath string `yaml:"db_path"`
	// ServerURL is the service endpoint the client commands talk to.
	ServerURL string `yaml:"server_url"`
	// OwnerID scopes every client operation to one account.
	OwnerID string `yaml:"owner_id"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ListenAddr: ":8080",
		DBPath:     filepath.Join(home, ".notenest", "notenest.db"),
		ServerURL:  "http://localhost:8080",
		OwnerID:    "default",
		LogLevel:   "info",
	}
}

// Load builds the effective configuration. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".notenest", "config.yaml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NOTENEST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("NOTENEST_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NOTENEST_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("NOTENEST_OWNER_ID"); v != "" {
		cfg.OwnerID = v
	}
	if v := os.Getenv("NOTENEST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
