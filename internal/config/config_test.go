package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buddyroo30/readadat/internal/errors"
)

// TestDefault tests the built-in configuration values
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "logs/readadat.log", cfg.Logging.FilePath)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, "csv", cfg.Export.Format)
	assert.False(t, cfg.Export.BOMPrefix)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, "logs", cfg.Paths.LogsDir)
}

// TestLoad tests the three-layer load: defaults, YAML file, environment
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		setupEnv    func(t *testing.T)
		wantErr     bool
		wantErrText string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "yaml file overlays defaults",
			configYAML: `
logging:
  level: debug
export:
  format: xlsx
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "xlsx", cfg.Export.Format)
				// Keys absent from the file keep their defaults.
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "reports", cfg.Paths.ReportsDir)
			},
		},
		{
			name: "environment overrides yaml",
			configYAML: `
logging:
  level: debug
export:
  format: xlsx
`,
			setupEnv: func(t *testing.T) {
				t.Setenv("READADAT_LOGGING_LEVEL", "error")
				t.Setenv("READADAT_EXPORT_FORMAT", "parquet")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, "parquet", cfg.Export.Format)
			},
		},
		{
			name: "environment alone overrides defaults",
			setupEnv: func(t *testing.T) {
				t.Setenv("READADAT_LOGGING_OUTPUT", "both")
				t.Setenv("READADAT_LOGGING_FILE_PATH", "/var/log/readadat.log")
				t.Setenv("READADAT_EXPORT_BOM_PREFIX", "true")
				t.Setenv("READADAT_PATHS_REPORTS_DIR", "/srv/reports")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "/var/log/readadat.log", cfg.Logging.FilePath)
				assert.True(t, cfg.Export.BOMPrefix)
				assert.Equal(t, "/srv/reports", cfg.Paths.ReportsDir)
				assert.Equal(t, "data", cfg.Paths.DataDir)
			},
		},
		{
			name:        "malformed yaml file",
			configYAML:  "logging: [unclosed",
			wantErr:     true,
			wantErrText: "failed to load config from",
		},
		{
			name: "malformed env value",
			setupEnv: func(t *testing.T) {
				t.Setenv("READADAT_LOGGING_DEVELOPMENT", "not-a-bool")
			},
			wantErr:     true,
			wantErrText: "failed to load config from env",
		},
		{
			name: "invalid level rejected after merge",
			setupEnv: func(t *testing.T) {
				t.Setenv("READADAT_LOGGING_LEVEL", "loud")
			},
			wantErr:     true,
			wantErrText: `invalid log level "loud"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "readadat.yml")
			if tt.configYAML != "" {
				require.NoError(t, os.WriteFile(configFile, []byte(tt.configYAML), 0644))
			}
			// Point the loader at the temp location so a readadat.yml in the
			// working directory cannot leak into the test.
			t.Setenv("READADAT_CONFIG_FILE", configFile)

			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}

			cfg, err := Load()

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
				if tt.wantErrText != "" {
					assert.Contains(t, err.Error(), tt.wantErrText)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

// TestLoadFromFile tests the YAML overlay in isolation
func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "full config",
			fileContent: `
logging:
  level: warn
  format: text
  output: file
  file_path: /var/log/readadat.log
  development: true
export:
  format: parquet
  bom_prefix: true
paths:
  data_dir: /srv/adat
  reports_dir: /srv/reports
  logs_dir: /srv/logs
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, "file", cfg.Logging.Output)
				assert.Equal(t, "/var/log/readadat.log", cfg.Logging.FilePath)
				assert.True(t, cfg.Logging.Development)
				assert.Equal(t, "parquet", cfg.Export.Format)
				assert.True(t, cfg.Export.BOMPrefix)
				assert.Equal(t, "/srv/adat", cfg.Paths.DataDir)
				assert.Equal(t, "/srv/reports", cfg.Paths.ReportsDir)
				assert.Equal(t, "/srv/logs", cfg.Paths.LogsDir)
			},
		},
		{
			name: "partial config keeps remaining defaults",
			fileContent: `
export:
  format: xlsx
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "xlsx", cfg.Export.Format)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "data", cfg.Paths.DataDir)
			},
		},
		{
			name:        "invalid yaml syntax",
			fileContent: "logging: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "readadat.yml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))

			cfg := Default()
			err := loadFromFile(configFile, cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		cfg := Default()
		err := loadFromFile(filepath.Join(t.TempDir(), "absent.yml"), cfg)
		assert.Error(t, err)
	})
}

// TestGetConfigFilePath tests the config file location override
func TestGetConfigFilePath(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		t.Setenv("READADAT_CONFIG_FILE", "")
		assert.Equal(t, "readadat.yml", getConfigFilePath())
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("READADAT_CONFIG_FILE", "/etc/readadat/config.yml")
		assert.Equal(t, "/etc/readadat/config.yml", getConfigFilePath())
	})
}

// TestValidate tests the validate function
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default configuration",
			mutate: func(*Config) {},
		},
		{
			name:   "warning level accepted",
			mutate: func(cfg *Config) { cfg.Logging.Level = "warning" },
		},
		{
			name:   "mixed case level accepted",
			mutate: func(cfg *Config) { cfg.Logging.Level = "DEBUG" },
		},
		{
			name: "file output with path accepted",
			mutate: func(cfg *Config) {
				cfg.Logging.Output = "file"
				cfg.Logging.FilePath = "logs/readadat.log"
			},
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "loud" },
			wantErr: `invalid log level "loud"`,
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: `invalid log format "xml"`,
		},
		{
			name:    "invalid log output",
			mutate:  func(cfg *Config) { cfg.Logging.Output = "syslog" },
			wantErr: `invalid log output "syslog"`,
		},
		{
			name: "file output requires a path",
			mutate: func(cfg *Config) {
				cfg.Logging.Output = "file"
				cfg.Logging.FilePath = ""
			},
			wantErr: "log file path must be set",
		},
		{
			name: "both output requires a path",
			mutate: func(cfg *Config) {
				cfg.Logging.Output = "both"
				cfg.Logging.FilePath = ""
			},
			wantErr: "log file path must be set",
		},
		{
			name:    "invalid export format",
			mutate:  func(cfg *Config) { cfg.Export.Format = "pdf" },
			wantErr: `invalid export format "pdf"`,
		},
		{
			name:    "empty data dir",
			mutate:  func(cfg *Config) { cfg.Paths.DataDir = "" },
			wantErr: "directories must be set",
		},
		{
			name:    "empty reports dir",
			mutate:  func(cfg *Config) { cfg.Paths.ReportsDir = "" },
			wantErr: "directories must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
