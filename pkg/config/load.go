package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	return parse(data)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Store.File.Watch = true
	cfg.Store.SQLite.WALMode = true
	cfg.Telemetry.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

func parse(data []byte) (*Config, error) {
	// Booleans defaulting to true are pre-set so that an absent key keeps
	// the default while an explicit false survives unmarshaling.
	cfg := &Config{}
	cfg.Store.File.Watch = true
	cfg.Store.SQLite.WALMode = true
	cfg.Telemetry.Metrics.Enabled = true

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies TAGFORGE_SECTION_FIELD environment variables on
// top of the file configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TAGFORGE_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("TAGFORGE_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("TAGFORGE_STORE_SQLITE_PATH"); val != "" {
		cfg.Store.SQLite.Path = val
	}
	if val := os.Getenv("TAGFORGE_STORE_FILE_DIR"); val != "" {
		cfg.Store.File.Dir = val
	}
	if val := os.Getenv("TAGFORGE_CACHE_BACKEND"); val != "" {
		cfg.Cache.Backend = val
	}
	if val := os.Getenv("TAGFORGE_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if val := os.Getenv("TAGFORGE_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TAGFORGE_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
