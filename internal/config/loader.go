package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".routelight"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a run configuration from a YAML file and applies
// defaults for fields the file leaves unset. If the file does not
// exist, it returns ErrConfigNotFound. Callers should handle this error
// based on whether the config file path was explicitly specified by the
// user.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.RouteTimeoutRaw != "" {
		timeout, err := time.ParseDuration(cfg.RouteTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid routeTimeout %q: %w", cfg.RouteTimeoutRaw, err)
		}
		cfg.RouteTimeout = timeout
	}

	// Re-apply defaults zeroed out by explicit empty values in the file.
	if cfg.ViewportWidth == 0 {
		cfg.ViewportWidth = DefaultViewportWidth
	}
	if cfg.ViewportHeight == 0 {
		cfg.ViewportHeight = DefaultViewportHeight
	}
	if cfg.RouteTimeout == 0 {
		cfg.RouteTimeout = DefaultRouteTimeout
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = XDGDataDir()
	}
	if cfg.EngineBinary == "" {
		cfg.EngineBinary = DefaultEngineBinary
	}

	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .routelight in the current directory
// 3. Look for .routelight in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
