package config

import (
	"slices"

	"github.com/sdejongh/durduff/pkg/compare"
	"github.com/sdejongh/durduff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompareConfig holds content comparison settings
type CompareConfig struct {
	BlockSize      int   `yaml:"block_size"`      // Read size in bytes
	BandwidthLimit int64 `yaml:"bandwidth_limit"` // Bytes per second, 0 = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Color        models.When `yaml:"color"`         // never, always or auto
	Progress     models.When `yaml:"progress"`      // never, always or auto
	Precount     bool        `yaml:"precount"`      // Count both trees before a progressive run
	ReportFormat string      `yaml:"report_format"` // "human" or "json"
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"`      // "json" or "text"
	Level      string `yaml:"level"`       // "debug", "info", "warn", "error"
	File       string `yaml:"file"`        // Log file path (empty = no logging)
	MaxSize    int64  `yaml:"max_size"`    // Bytes before rotation, 0 = never
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			BlockSize:      compare.DefaultChunkSize,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Color:        models.WhenAuto,
			Progress:     models.WhenAuto,
			Precount:     true,
			ReportFormat: "human",
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "json",
			Level:      "info",
			File:       "",
			MaxSize:    10 << 20,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compare.BlockSize < 1 {
		return &models.ValidationError{
			Field:   "compare.block_size",
			Message: "must be a positive number of bytes",
		}
	}

	if c.Compare.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "compare.bandwidth_limit",
			Message: "cannot be negative",
		}
	}

	if _, err := models.ParseWhen(string(c.Output.Color)); err != nil {
		return &models.ValidationError{
			Field:   "output.color",
			Message: "must be 'never', 'always', or 'auto'",
		}
	}

	if _, err := models.ParseWhen(string(c.Output.Progress)); err != nil {
		return &models.ValidationError{
			Field:   "output.progress",
			Message: "must be 'never', 'always', or 'auto'",
		}
	}

	switch {
	case c.Output.ReportFormat != "human" && c.Output.ReportFormat != "json":
		return &models.ValidationError{
			Field:   "output.report_format",
			Message: "must be 'human' or 'json'",
		}
	case c.Logging.Format != "json" && c.Logging.Format != "text":
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	case !slices.Contains(logLevels, c.Logging.Level):
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	case c.Logging.MaxSize < 0:
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "cannot be negative",
		}
	case c.Logging.MaxBackups < 0:
		return &models.ValidationError{
			Field:   "logging.max_backups",
			Message: "cannot be negative",
		}
	}

	return nil
}
