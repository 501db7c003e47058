// Package config provides configuration management for the redaction library.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hfi/aegis-redact/internal/audit"
)

// Config represents the main configuration structure
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Audit   audit.Config  `yaml:"audit"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains operational logging settings
type LoggingConfig struct {
	// Level is a zerolog level name: "debug", "info", "warn", "error",
	// or "disabled"
	Level string `yaml:"level"`
}

// MetricsConfig contains Prometheus metrics settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "disabled",
		},
		Audit:   *audit.DefaultConfig(),
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load loads the configuration from file or environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Check for config file path in environment or use default
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Sanitize and validate path to prevent path traversal
	configPath = sanitizeConfigPath(configPath)

	data, err := os.ReadFile(configPath) //#nosec G304 -- config path is sanitized above
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// sanitizeConfigPath cleans and validates a config file path
func sanitizeConfigPath(path string) string {
	// Clean the path to remove any . or .. components
	cleaned := filepath.Clean(path)

	// If path is absolute, use it as-is (operator explicitly set full path)
	// If relative, ensure it doesn't escape the current directory
	if !filepath.IsAbs(cleaned) {
		for len(cleaned) > 2 && cleaned[:3] == "../" {
			cleaned = cleaned[3:]
		}
		if cleaned == ".." {
			cleaned = "config.yaml"
		}
	}

	return cleaned
}
