// Package config loads tada's YAML configuration and resolves the
// directories it reads and writes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the directory name used under the XDG roots.
	AppName = "tada"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	Backend  string `yaml:"backend,omitempty"`
	DataDir  string `yaml:"data_dir,omitempty"`
	Theme    string `yaml:"theme,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path, or DefaultPath when path is empty. A missing file is not
// an error. Environment variables override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	c, err := readFile(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path, creating the directory if it doesn't exist.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveTheme records theme in the file at path and leaves the rest of the
// file as written, without environment overrides or defaults.
func SaveTheme(path, theme string) error {
	if path == "" {
		path = DefaultPath()
	}
	c, err := readFile(path)
	if err != nil {
		return err
	}
	c.Theme = theme
	return c.Save(path)
}

func readFile(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return c, nil
}

// Validate rejects values nothing downstream could act on.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendFile, BackendSQLite, BackendMemory)
	}
	return nil
}

// DBPath is the SQLite database used by the sqlite backend.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, AppName+".db")
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Theme == "" {
		c.Theme = "dark"
	}
	if c.LogLevel == "" {
		c.LogLevel = "error"
	}
}

// DefaultPath honours TADA_CONFIG, then XDG_CONFIG_HOME, then ~/.config.
func DefaultPath() string {
	if p := os.Getenv("TADA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.yaml")
}

// DefaultDataDir uses XDG_DATA_HOME or ~/.local/share.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if root := os.Getenv(env); root != "" {
		return filepath.Join(root, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, fallback, AppName)
}
