package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/smilemakc/specvalidate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	l := New(cfg)
	assert.NotNil(t, l)
	assert.NotNil(t, l.logger)
}

func TestNew_TextFormatDebugLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "text"}
	l := New(cfg)
	assert.NotNil(t, l)
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := &Logger{logger: slog.New(handler)}

	l.Info("walk started", "project", "demo")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "walk started", entry["msg"])
	assert.Equal(t, "demo", entry["project"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, nil)
	l := &Logger{logger: slog.New(handler)}

	scoped := l.With("domain", "orders")
	scoped.Warn("duplicate endpoint")

	assert.True(t, strings.Contains(buf.String(), "domain=orders"))
	assert.True(t, strings.Contains(buf.String(), "duplicate endpoint"))
}

func TestLogger_ContextVariants(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := &Logger{logger: slog.New(handler)}
	ctx := context.Background()

	l.DebugContext(ctx, "debug msg")
	l.InfoContext(ctx, "info msg")
	l.WarnContext(ctx, "warn msg")
	l.ErrorContext(ctx, "error msg")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg"} {
		assert.True(t, strings.Contains(out, want))
	}
}

func TestLogger_PhaseMethods(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := &Logger{logger: slog.New(handler)}

	l.WalkStarted("/tmp/project")
	l.ParseFailed("specs/domains/orders/flows/bad.yaml", errors.New("yaml: bad indentation"))
	l.DomainConfigFailed("orders", errors.New("missing name"))
	l.NormalizeFailed("orders", "create", errors.New("unknown node kind"))
	l.ReportsWritten("/tmp/project")

	out := buf.String()
	for _, want := range []string{
		"walk started", "/tmp/project",
		"parse failed", "specs/domains/orders/flows/bad.yaml",
		"domain config failed to load", "orders",
		"normalize failed", "create",
		"reports written",
	} {
		assert.True(t, strings.Contains(out, want), "expected output to contain %q", want)
	}
}

func TestDefaultLogger(t *testing.T) {
	prior := Default()
	defer SetDefault(prior)

	var buf bytes.Buffer
	SetDefault(&Logger{logger: slog.New(slog.NewTextHandler(&buf, nil))})

	Info("hello")
	assert.True(t, strings.Contains(buf.String(), "hello"))
}
