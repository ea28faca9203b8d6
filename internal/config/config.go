// Package config holds lookbook's user configuration, stored as JSON at
// ~/.lookbook/config.json. This file is the single source of truth for UI
// settings and the service endpoint. The profile (user name, body type)
// lives in the key-value store, not here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultServiceURL is where the outfit-generation backend listens when no
// override is configured.
const DefaultServiceURL = "http://127.0.0.1:8000"

// EnvServiceURL overrides the configured service URL when set.
const EnvServiceURL = "LOOKBOOK_SERVICE_URL"

// LoggingConfig controls the categorized debug file logging.
type LoggingConfig struct {
	// DebugMode enables file logging under ~/.lookbook/logs/.
	DebugMode bool `json:"debug_mode"`
	// Categories filters logging per category; empty enables all.
	Categories map[string]bool `json:"categories,omitempty"`
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level,omitempty"`
}

// UserConfig is the persisted configuration.
type UserConfig struct {
	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`

	// FontSize scales the transcript layout ("small", "medium", "large").
	FontSize string `json:"font_size,omitempty"`

	// ServiceURL is the outfit-generation service base URL.
	ServiceURL string `json:"service_url,omitempty"`

	// Logging configures debug file logging.
	Logging *LoggingConfig `json:"logging,omitempty"`
}

// DefaultDataDir returns ~/.lookbook, falling back to the working directory
// when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lookbook"
	}
	return filepath.Join(home, ".lookbook")
}

// DefaultUserConfigPath returns the standard config file location.
func DefaultUserConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.json")
}

// DefaultDBPath returns the standard database location.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "lookbook.db")
}

// Load reads the config at path. A missing file yields defaults, not an
// error; a malformed file is an error.
func Load(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *UserConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolvedServiceURL returns the service URL with the environment override
// applied: LOOKBOOK_SERVICE_URL > service_url > default.
func (c *UserConfig) ResolvedServiceURL() string {
	if url := os.Getenv(EnvServiceURL); url != "" {
		return url
	}
	if c.ServiceURL != "" {
		return c.ServiceURL
	}
	return DefaultServiceURL
}

func defaults() *UserConfig {
	return &UserConfig{
		Theme:      "dark",
		FontSize:   "medium",
		ServiceURL: DefaultServiceURL,
	}
}

func (c *UserConfig) normalize() {
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = "dark"
	}
	switch c.FontSize {
	case "small", "medium", "large":
	default:
		c.FontSize = "medium"
	}
}
