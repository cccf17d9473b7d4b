package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/christopherklint97/hebdo/internal/store"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Storage       StorageConfig `toml:"storage"`
	Display       DisplayConfig `toml:"display"`
	Notifications NotifyConfig  `toml:"notifications"`
	Log           LogConfig     `toml:"log"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // store.BackendFile or store.BackendSQLite
	Path    string `toml:"path"`
}

type DisplayConfig struct {
	ErrorDelaySeconds int `toml:"error_delay_seconds"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: store.BackendFile,
			Path:    store.DefaultPath,
		},
		Display: DisplayConfig{
			ErrorDelaySeconds: 5,
		},
		Notifications: NotifyConfig{
			Enabled: true,
		},
	}
}

// ErrorDelay is how long a validation message stays on screen.
func (c *Config) ErrorDelay() time.Duration {
	if c.Display.ErrorDelaySeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Display.ErrorDelaySeconds) * time.Second
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendFile, store.BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (expected %q or %q)",
			c.Storage.Backend, store.BackendFile, store.BackendSQLite)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is empty")
	}
	return nil
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hebdo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEBDO_DATA_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("HEBDO_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// WriteDefault writes the default config to path, unless a file already
// exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	out, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
