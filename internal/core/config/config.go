// Package config handles configuration loading and validation for inbox.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/inbox/internal/core/notify"
	"github.com/hay-kot/inbox/internal/data/db"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Drivers lists every supported storage driver.
var Drivers = []string{DriverSQLite, DriverFile, DriverMemory}

// DefaultFileName is the JSON file used by the file driver when no path is set.
const DefaultFileName = "inbox.json"

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Watch    WatchConfig    `yaml:"watch"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the notification list is persisted.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, file or memory
	Path   string `yaml:"path"`   // file driver only; defaults to <data_dir>/inbox.json
	Key    string `yaml:"key"`    // slot key the list is stored under
}

// DatabaseConfig tunes the sqlite driver.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// WatchConfig tunes `inbox watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dbDefaults := db.DefaultOpenOptions()

	return Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Key:    notify.StorageKey,
		},
		Database: DatabaseConfig{
			MaxOpenConns: dbDefaults.MaxOpenConns,
			MaxIdleConns: dbDefaults.MaxIdleConns,
			BusyTimeout:  dbDefaults.BusyTimeout,
		},
		Watch: WatchConfig{
			Debounce: 50 * time.Millisecond,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

// StoragePath returns the JSON file used by the file driver.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.DataDir, DefaultFileName)
}
