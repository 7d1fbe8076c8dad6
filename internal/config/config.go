// Package config loads securix settings from defaults, an optional YAML
// file and SECURIX_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/securix/internal/ui"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds the resolved settings.
type Config struct {
	DataDir       string
	Storage       string
	Theme         string
	ToastDuration time.Duration
	LogLevel      slog.Level
	LogFile       string
	NoColor       bool
}

// DBPath is where the SQLite backend keeps its database.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, "securix.db") }

// fileConfig mirrors config.yaml. Empty fields leave the default in place.
type fileConfig struct {
	DataDir       string `yaml:"data_dir"`
	Storage       string `yaml:"storage"`
	Theme         string `yaml:"theme"`
	ToastDuration string `yaml:"toast_duration"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	NoColor       *bool  `yaml:"no_color"`
}

// DefaultDataDir is ~/.securix.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".securix"), nil
}

// Load resolves the configuration. path names a YAML file; when empty,
// <data dir>/config.yaml is used if it exists. An explicit path must exist.
// A non-empty dataDir (the --data-dir flag) wins over the environment and
// the file, and is where the default config file is looked up.
//
// Environment variables: SECURIX_DATA_DIR, SECURIX_STORAGE (file|sqlite|memory),
// SECURIX_THEME (classic|neon|mono), SECURIX_TOAST_DURATION (2s),
// SECURIX_LOG_LEVEL (debug|info|warn|error), SECURIX_LOG_FILE, NO_COLOR.
func Load(path, dataDir string) (*Config, error) {
	cfg := &Config{
		Storage:       StorageFile,
		Theme:         "classic",
		ToastDuration: 2 * time.Second,
		LogLevel:      slog.LevelInfo,
	}

	pinned := dataDir != "" || os.Getenv("SECURIX_DATA_DIR") != ""
	if dataDir == "" {
		dataDir = os.Getenv("SECURIX_DATA_DIR")
	}
	if dataDir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = d
	}
	cfg.DataDir = dataDir

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	fc, err := readFile(path, explicit)
	if err != nil {
		return nil, err
	}
	if fc != nil {
		if err := cfg.apply(*fc, pinned); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "securix.log")
	}
	return cfg, nil
}

func readFile(path string, mustExist bool) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// apply layers the file over the defaults. pinned means the data dir came
// from the flag or the environment and data_dir in the file is ignored.
func (c *Config) apply(fc fileConfig, pinned bool) error {
	if fc.DataDir != "" && !pinned {
		c.DataDir = fc.DataDir
	}
	if fc.NoColor != nil {
		c.NoColor = *fc.NoColor
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	return c.set(fc.Storage, fc.Theme, fc.ToastDuration, fc.LogLevel)
}

func (c *Config) applyEnv() error {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.NoColor = true
	}
	if v := os.Getenv("SECURIX_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if err := c.set(
		os.Getenv("SECURIX_STORAGE"),
		os.Getenv("SECURIX_THEME"),
		os.Getenv("SECURIX_TOAST_DURATION"),
		os.Getenv("SECURIX_LOG_LEVEL"),
	); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// set validates and applies the non-empty string settings.
func (c *Config) set(storage, theme, toast, level string) error {
	if storage != "" {
		if err := c.SetStorage(storage); err != nil {
			return err
		}
	}
	if theme != "" {
		if err := c.SetTheme(theme); err != nil {
			return err
		}
	}
	if toast != "" {
		d, err := time.ParseDuration(toast)
		if err != nil {
			return fmt.Errorf("toast duration has invalid duration %q: %w", toast, err)
		}
		if d <= 0 {
			return fmt.Errorf("toast duration must be positive, got %s", d)
		}
		c.ToastDuration = d
	}
	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
		c.LogLevel = l
	}
	return nil
}

// SetStorage validates and sets the backend name.
func (c *Config) SetStorage(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case StorageFile, StorageSQLite, StorageMemory:
		c.Storage = s
		return nil
	}
	return fmt.Errorf("invalid storage %q: must be one of [%s %s %s]", s, StorageFile, StorageSQLite, StorageMemory)
}

// SetTheme validates and sets the theme name.
func (c *Config) SetTheme(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !ui.ValidTheme(s) {
		return fmt.Errorf("invalid theme %q: must be one of %v", s, ui.Themes)
	}
	c.Theme = s
	return nil
}
