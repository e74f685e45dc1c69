package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if !slices.Contains(Drivers, c.Storage.Driver) {
		errs = errs.Append("storage.driver", fmt.Errorf("unknown driver %q (want one of %s)", c.Storage.Driver, strings.Join(Drivers, ", ")))
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = errs.Append("storage.key", fmt.Errorf("cannot be empty"))
	}

	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1"))
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("must be between 0 and max_open_conns"))
	}

	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("cannot be negative"))
	}

	if c.Watch.Debounce < 0 {
		errs = errs.Append("watch.debounce", fmt.Errorf("cannot be negative"))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks the filesystem locations the
// configuration points at. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateStoragePath(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateStoragePath() error {
	if c.Storage.Driver != DriverFile {
		return nil
	}

	path := c.StoragePath()
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return criterio.NewFieldErrors("storage.path", fmt.Errorf("%s is a directory, not a file", path))
	}

	return criterio.Run("storage.path", filepath.Dir(path), isDirectoryOrNotExist)
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
