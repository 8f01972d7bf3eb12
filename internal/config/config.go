// Package config loads and saves couple-budget configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all couple-budget configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds the budget service endpoint.
type ServerConfig struct {
	URL string `toml:"url,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// DefaultUser preselects a member in the expense composer by name.
	DefaultUser string `toml:"default_user,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "couple-budget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "couple-budget")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ServerEnvVar overrides the configured service URL when set.
const ServerEnvVar = "COUPLE_BUDGET_SERVER"

// ServerURL returns the service base URL from the COUPLE_BUDGET_SERVER env
// var or the config, in that order. Empty means use the client default.
func ServerURL(cfg Config) string {
	if u := os.Getenv(ServerEnvVar); u != "" {
		return u
	}
	return cfg.Server.URL
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
