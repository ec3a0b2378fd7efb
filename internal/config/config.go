// Package config provides configuration management for specvalidate.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/smilemakc/specvalidate/pkg/models"
)

// Config holds the validator's runtime configuration, sourced from
// environment variables (and a local .env file, if present) the way the
// teacher's internal/config package does for its own server settings.
type Config struct {
	// ProjectPath is the root of the spec corpus the driver walks
	// (spec.md §6, <P>/specs/...). The CLI's positional argument, when
	// given, overrides this.
	ProjectPath string

	Logging LoggingConfig

	// MinFlowsForCoveragePercent is the flow-count threshold below which
	// node-type coverage percent is left null (spec.md §4.8).
	MinFlowsForCoveragePercent int

	// WriteReports controls whether the driver writes the two report
	// documents to disk; false is useful for tests that only want the
	// in-memory report structures.
	WriteReports bool

	// ReportDir is where the two report documents are written. Defaults
	// to ProjectPath (spec.md §6, "written to project root").
	ReportDir string
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ProjectPath: getEnv("SPECVALIDATE_PROJECT_PATH", "."),
		Logging: LoggingConfig{
			Level:  getEnv("SPECVALIDATE_LOG_LEVEL", "info"),
			Format: getEnv("SPECVALIDATE_LOG_FORMAT", "text"),
		},
		MinFlowsForCoveragePercent: getEnvAsInt("SPECVALIDATE_MIN_FLOWS_FOR_COVERAGE", 5),
		WriteReports:               getEnvAsBool("SPECVALIDATE_WRITE_REPORTS", true),
		ReportDir:                  getEnv("SPECVALIDATE_REPORT_DIR", ""),
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = cfg.ProjectPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks every field and returns all violations at once as a
// models.ValidationErrors, rather than stopping at the first bad field —
// useful for a CLI where the user would rather see every fix they need to
// make in one pass instead of one fmt.Errorf per invocation.
func (c *Config) Validate() error {
	var errs models.ValidationErrors

	if c.ProjectPath == "" {
		errs = append(errs, models.ValidationError{Field: "project_path", Message: "project path is required"})
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		errs = append(errs, models.ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level: %s", c.Logging.Level),
		})
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		errs = append(errs, models.ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format: %s (must be json or text)", c.Logging.Format),
		})
	}

	if c.MinFlowsForCoveragePercent < 1 {
		errs = append(errs, models.ValidationError{
			Field:   "min_flows_for_coverage_percent",
			Message: "min flows for coverage percent must be at least 1",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Helper functions for environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
