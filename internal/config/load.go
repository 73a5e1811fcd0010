package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrNoModel is returned by Validate when no model path is configured.
var ErrNoModel = errors.New("no model path given")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	if err := applyFlags(cfg, flag.Args()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings the viewer cannot start without.
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return ErrNoModel
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate %d", c.Camera.TickRate)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "KV6View")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "KV6View")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "kv6view")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "kv6view")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A controls section replaces individual bindings, keeping the rest.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	defaults := cfg.Controls
	cfg.Controls = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Controls = defaults
		return err
	}
	merged := make(map[string]string, len(defaults)+len(cfg.Controls))
	for action, key := range defaults {
		merged[action] = key
	}
	for action, key := range cfg.Controls {
		merged[action] = key
	}
	cfg.Controls = merged
	return nil
}
