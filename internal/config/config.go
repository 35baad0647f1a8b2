package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Backend names accepted in store.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all cart settings.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects where the list snapshot lives.
type StoreConfig struct {
	Backend string `yaml:"backend"` // file, sqlite, memory
	Path    string `yaml:"path"`    // directory for file, database file for sqlite
	Key     string `yaml:"key"`     // slot name
}

type UIConfig struct {
	Theme string `yaml:"theme"`
	Group bool   `yaml:"group"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means stderr
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    ".",
			Key:     "shoppingCart",
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath is ~/.cart/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cart", "config.yaml")
}

// Load reads path on top of the defaults and applies env overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "read %s", path)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write")
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CART_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("CART_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("CART_KEY"); v != "" {
		c.Store.Key = v
	}
	if v := os.Getenv("CART_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("CART_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate normalizes names and rejects unknown backends.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return errors.New("store key must not be empty")
	}
	if c.Store.Backend == BackendSQLite && (c.Store.Path == "" || c.Store.Path == ".") {
		c.Store.Path = "cart.db"
	}
	return nil
}
