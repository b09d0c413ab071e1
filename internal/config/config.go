// Package config loads the repository-local configuration file, the way
// internal/config.Load does for the teacher repo, scoped down to what a
// single-user local repository actually needs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultBranch is the branch init creates when none is requested.
const DefaultBranch = "master"

// Config is the contents of R/config.json.
type Config struct {
	DefaultBranch string `json:"default_branch"`
	LogLevel      string `json:"log_level"`
}

// Default returns the configuration written by a fresh init.
func Default() *Config {
	return &Config{
		DefaultBranch: DefaultBranch,
		LogLevel:      "info",
	}
}

// Load reads and parses the config file at path. A missing file is not an
// error from the caller's perspective (the defaults are returned); Load
// fails on a file that exists but cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = DefaultBranch
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
