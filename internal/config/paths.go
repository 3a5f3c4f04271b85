package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buddyroo30/readadat/internal/errors"
)

// resolveDir resolves a configured directory against the working directory,
// leaving absolute paths untouched.
func resolveDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewConfigError("failed to resolve working directory", err)
	}
	return filepath.Join(cwd, dir), nil
}

// GetDataDir returns the resolved data directory path
func (c *Config) GetDataDir() (string, error) {
	return resolveDir(c.Paths.DataDir)
}

// GetReportsDir returns the resolved reports directory path
func (c *Config) GetReportsDir() (string, error) {
	return resolveDir(c.Paths.ReportsDir)
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() (string, error) {
	return resolveDir(c.Paths.LogsDir)
}

// GetLogFilePath returns the log file location, resolving a relative
// configured path against the logs directory's parent rules.
func (c *Config) GetLogFilePath() (string, error) {
	if filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewConfigError("failed to resolve working directory", err)
	}
	return filepath.Join(cwd, c.Logging.FilePath), nil
}

// EnsureDirectories creates the configured directories when missing
func (c *Config) EnsureDirectories() error {
	for _, get := range []func() (string, error){
		c.GetDataDir, c.GetReportsDir, c.GetLogsDir,
	} {
		dir, err := get()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewConfigError(
				fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}
	return nil
}
