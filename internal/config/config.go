// Package config loads and persists crmd configuration from an XDG TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all crmd configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	CRM        CRMConfig        `toml:"crm"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds the API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Path string `toml:"path,omitempty"`
}

// CRMConfig holds sales pipeline preferences.
type CRMConfig struct {
	AnnualGoal float64 `toml:"annual_goal"`
	Currency   string  `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:3000",
		},
		CRM: CRMConfig{
			AnnualGoal: 1000000,
			Currency:   "USD",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "crmd")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "crmd")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "crmd")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "crmd")
}

// Load reads the config file, returning defaults if it doesn't exist.
// CRMD_ADDR and CRMD_DB environment variables override the file.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if addr := os.Getenv("CRMD_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if db := os.Getenv("CRMD_DB"); db != "" {
		cfg.Storage.Path = db
	}
	return cfg, nil
}

// DBPath returns the configured database path, falling back to the XDG
// data directory.
func (c Config) DBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DataDir(), "crm.db")
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
