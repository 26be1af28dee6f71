// Package config loads CLI configuration from defaults, an optional
// JSON file and WB_* environment variables, in increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the CLI settings.
type Config struct {
	// PluginDirs lists directories scanned for extension manifests.
	PluginDirs []string `json:"plugin_dirs"`
	// PackageManager is the executable used for workspace operations.
	PackageManager string `json:"package_manager"`
	Debug          bool   `json:"debug"`
	LogLevel       string `json:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		PackageManager: "uv",
		LogLevel:       "info",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.PluginDirs = []string{filepath.Join(home, ".config", "workbench", "plugins")}
	}
	return cfg
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "workbench", "config.json"), nil
}

// Load builds the configuration from defaults, the file at path (if it
// exists) and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WB_PLUGIN_DIRS"); v != "" {
		c.PluginDirs = filepath.SplitList(v)
	}
	if v := os.Getenv("WB_PACKAGE_MANAGER"); v != "" {
		c.PackageManager = v
	}
	if v := os.Getenv("WB_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
	if v := os.Getenv("WB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save writes the configuration to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
