package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/buddyroo30/readadat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ExportConfig contains default export behavior
type ExportConfig struct {
	Format string `yaml:"format" envconfig:"FORMAT"`
	// BOMPrefix writes a UTF-8 byte order mark ahead of CSV output so the
	// files open cleanly in Excel.
	BOMPrefix bool `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "stdout",
			FilePath:    "logs/readadat.log",
			Development: false,
		},
		Export: ExportConfig{
			Format:    "csv",
			BOMPrefix: false,
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, then the
// optional YAML config file, then environment variables (READADAT_* wins).
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, errors.NewConfigError(
				fmt.Sprintf("failed to load config from %s", configFile), err)
		}
	}

	if err := envconfig.Process("READADAT", cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getConfigFilePath returns the config file location, honoring the
// READADAT_CONFIG_FILE override.
func getConfigFilePath() string {
	if path := os.Getenv("READADAT_CONFIG_FILE"); path != "" {
		return path
	}
	return "readadat.yml"
}

// loadFromFile overlays values from a YAML file onto cfg. Keys absent from
// the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid log level %q", c.Logging.Level), nil)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid log format %q", c.Logging.Format), nil)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "file", "both":
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid log output %q", c.Logging.Output), nil)
	}

	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return errors.NewConfigError("log file path must be set for file output", nil)
	}

	switch strings.ToLower(c.Export.Format) {
	case "csv", "xlsx", "parquet":
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid export format %q", c.Export.Format), nil)
	}

	if c.Paths.DataDir == "" || c.Paths.ReportsDir == "" || c.Paths.LogsDir == "" {
		return errors.NewConfigError("data, reports and logs directories must be set", nil)
	}

	return nil
}
