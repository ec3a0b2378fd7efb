// Package logging provides structured logging for the validator, adapted
// from the teacher's internal/infrastructure/logger package (same Logger
// shape and slog wiring, repurposed to the validator's own LoggingConfig).
// Unlike the teacher's package, which is a generic slog wrapper with no
// callers outside itself, this one also owns the driver's per-phase log
// lines (walk/parse/normalize/report) as named methods, so the driver
// never builds ad hoc field lists at call sites.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/smilemakc/specvalidate/internal/config"
)

// Logger wraps slog.Logger with additional context.
type Logger struct {
	logger *slog.Logger
}

// New creates a new logger based on the configuration.
func New(cfg config.LoggingConfig) *Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Level == "debug",
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

// With creates a new logger with the given attributes.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithContext returns l unchanged; ctx is not attached to the logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}

// DebugContext logs a debug message with context.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// WalkStarted logs the start of a driver run over a project root (spec.md
// §4.7 walk phase).
func (l *Logger) WalkStarted(projectPath string) {
	l.logger.Info("walk started", "project", projectPath)
}

// ParseFailed logs a single file's parse failure. Never aborts the run
// (spec.md §7) — the driver records the failure and continues.
func (l *Logger) ParseFailed(path string, err error) {
	l.logger.Warn("parse failed", "path", path, "error", err)
}

// DomainConfigFailed logs a domain.yaml that parsed but failed to load into
// a DomainConfig.
func (l *Logger) DomainConfigFailed(domainID string, err error) {
	l.logger.Warn("domain config failed to load", "domain", domainID, "error", err)
}

// NormalizeFailed logs a single flow's normalize failure (spec.md §4.7
// normalize phase).
func (l *Logger) NormalizeFailed(domainID, flowID string, err error) {
	l.logger.Warn("normalize failed", "domain", domainID, "flow", flowID, "error", err)
}

// ReportsWritten logs that both report documents were written to dir.
func (l *Logger) ReportsWritten(dir string) {
	l.logger.Info("reports written", "dir", dir)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(config.LoggingConfig{Level: "info", Format: "text"})
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...interface{}) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message using the default logger.
func Info(msg string, args ...interface{}) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...interface{}) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, args ...interface{}) {
	defaultLogger.Error(msg, args...)
}
