// Package config provides configuration management for Keyfold.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keyfold/keyfold/internal/fileutil"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version int    `yaml:"version"`
	Home    string `yaml:"home"`

	// Chain is a chain selection made before the first wallet was
	// generated. The snapshot store only records the chain together with a
	// full snapshot, so until then the selection lives here. Once a
	// snapshot exists its chain record wins.
	Chain string `yaml:"chain,omitempty"`

	Store   StoreConfig   `yaml:"store"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig defines snapshot store settings.
type StoreConfig struct {
	// Dir is the snapshot database directory. Empty means <home>/store.
	Dir string `yaml:"dir,omitempty"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, kferr.Wrap(kferr.ErrConfigInvalid, "parsing %s: %v", path, err)
	}

	return cfg, nil
}

// Save writes configuration to the specified file atomically.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// StoreDir returns the snapshot store directory, resolving the default
// relative to home.
func (c *Config) StoreDir() string {
	if c.Store.Dir != "" {
		return ExpandHome(c.Store.Dir)
	}
	return filepath.Join(ExpandHome(c.Home), "store")
}

// DefaultHome returns the default keyfold home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyfold"
	}
	return filepath.Join(home, ".keyfold")
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
