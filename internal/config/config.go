// Package config holds all cartscout configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all cartscout configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Pricing backend
	Backend BackendConfig `yaml:"backend"`

	// Search defaults
	Search SearchConfig `yaml:"search"`

	// Job polling
	Poll PollConfig `yaml:"poll"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the pricing backend client.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// SearchConfig holds defaults for a new search.
type SearchConfig struct {
	ZipCode          string `yaml:"zip_code"`
	PrioritizeNearby bool   `yaml:"prioritize_nearby"`
}

// PollConfig configures job-status polling.
type PollConfig struct {
	Interval string `yaml:"interval"`
}

// LoggingConfig controls the debug-gated category logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "cartscout",
		Version: "1.0.0",
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Search: SearchConfig{},
		Poll: PollConfig{
			Interval: "2s",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultPath returns the default config file location (~/.cartscout/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cartscout", "config.yaml")
	}
	return filepath.Join(home, ".cartscout", "config.yaml")
}

// StateDir returns the directory holding config and logs.
func StateDir() string {
	return filepath.Dir(DefaultPath())
}

// Load reads a config file, applies env overrides, and validates. A missing
// file yields the defaults (with env overrides), not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CARTSCOUT_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("CARTSCOUT_ZIP"); v != "" {
		c.Search.ZipCode = v
	}
	if v := os.Getenv("CARTSCOUT_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// Validate checks the config for usable values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if _, err := c.BackendTimeout(); err != nil {
		return fmt.Errorf("backend.timeout: %w", err)
	}
	if _, err := c.PollInterval(); err != nil {
		return fmt.Errorf("poll.interval: %w", err)
	}
	return nil
}

// BackendTimeout parses the backend request timeout.
func (c *Config) BackendTimeout() (time.Duration, error) {
	if c.Backend.Timeout == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(c.Backend.Timeout)
}

// PollInterval parses the poll interval.
func (c *Config) PollInterval() (time.Duration, error) {
	if c.Poll.Interval == "" {
		return 2 * time.Second, nil
	}
	return time.ParseDuration(c.Poll.Interval)
}
