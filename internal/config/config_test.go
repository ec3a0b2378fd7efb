package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/specvalidate/pkg/models"
)

func clearEnv() {
	for _, key := range []string{
		"SPECVALIDATE_PROJECT_PATH",
		"SPECVALIDATE_LOG_LEVEL",
		"SPECVALIDATE_LOG_FORMAT",
		"SPECVALIDATE_MIN_FLOWS_FOR_COVERAGE",
		"SPECVALIDATE_WRITE_REPORTS",
		"SPECVALIDATE_REPORT_DIR",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.ProjectPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.MinFlowsForCoveragePercent)
	assert.True(t, cfg.WriteReports)
	assert.Equal(t, ".", cfg.ReportDir)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("SPECVALIDATE_PROJECT_PATH", "/tmp/myproject")
	os.Setenv("SPECVALIDATE_LOG_LEVEL", "debug")
	os.Setenv("SPECVALIDATE_LOG_FORMAT", "json")
	os.Setenv("SPECVALIDATE_MIN_FLOWS_FOR_COVERAGE", "10")
	os.Setenv("SPECVALIDATE_WRITE_REPORTS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/myproject", cfg.ProjectPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.MinFlowsForCoveragePercent)
	assert.False(t, cfg.WriteReports)
	// ReportDir falls back to ProjectPath when not set explicitly.
	assert.Equal(t, "/tmp/myproject", cfg.ReportDir)
}

func TestLoad_ReportDirOverride(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("SPECVALIDATE_PROJECT_PATH", "/tmp/myproject")
	os.Setenv("SPECVALIDATE_REPORT_DIR", "/tmp/reports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", cfg.ReportDir)
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := &Config{ProjectPath: ".", Logging: LoggingConfig{Level: "verbose", Format: "text"}, MinFlowsForCoveragePercent: 5}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RejectsUnknownLogFormat(t *testing.T) {
	cfg := &Config{ProjectPath: ".", Logging: LoggingConfig{Level: "info", Format: "xml"}, MinFlowsForCoveragePercent: 5}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RejectsEmptyProjectPath(t *testing.T) {
	cfg := &Config{ProjectPath: "", Logging: LoggingConfig{Level: "info", Format: "text"}, MinFlowsForCoveragePercent: 5}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RejectsNonPositiveCoverageThreshold(t *testing.T) {
	cfg := &Config{ProjectPath: ".", Logging: LoggingConfig{Level: "info", Format: "text"}, MinFlowsForCoveragePercent: 0}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_AccumulatesAllFieldErrors(t *testing.T) {
	cfg := &Config{ProjectPath: "", Logging: LoggingConfig{Level: "verbose", Format: "xml"}, MinFlowsForCoveragePercent: 0}
	err := cfg.Validate()
	require.Error(t, err)

	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 4)

	var fields []string
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "project_path")
	assert.Contains(t, fields, "logging.level")
	assert.Contains(t, fields, "logging.format")
	assert.Contains(t, fields, "min_flows_for_coverage_percent")
}
