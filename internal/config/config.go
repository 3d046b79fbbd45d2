// Package config loads the optional YAML configuration file. Every
// value has a default; the file only overrides, and command-line flags
// override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// IndexURL is the package index JSON API base URL.
	IndexURL string `yaml:"index_url"`

	// PipCommand is the pip executable to invoke.
	PipCommand string `yaml:"pip_command"`

	// TimeoutSeconds is the HTTP timeout for index requests.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Exclude lists package names never checked or upgraded.
	Exclude []string `yaml:"exclude"`

	// HistoryPath is the SQLite history database location.
	HistoryPath string `yaml:"history_path"`

	// HistoryDisabled turns off history recording entirely.
	HistoryDisabled bool `yaml:"history_disabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		IndexURL:       "https://pypi.org/pypi",
		PipCommand:     "pip",
		TimeoutSeconds: 30,
		HistoryPath:    defaultHistoryPath(),
	}
}

// DefaultPath returns the standard config file location
// (~/.config/pipup/config.yaml on Linux).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pipup", "config.yaml")
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; a file that exists but cannot be parsed is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg.withDefaults(), nil
}

// withDefaults backfills zero values the file may have emptied out.
func (c Config) withDefaults() Config {
	def := Default()
	if c.IndexURL == "" {
		c.IndexURL = def.IndexURL
	}
	if c.PipCommand == "" {
		c.PipCommand = def.PipCommand
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.HistoryPath == "" {
		c.HistoryPath = def.HistoryPath
	}
	return c
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "pipup.db"
	}
	return filepath.Join(dir, "pipup", "history.db")
}
