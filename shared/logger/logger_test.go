package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	cfg.writer = output

	l, err := New(&cfg)
	require.NoError(t, err)
	return l, output
}

func decodeLines(t *testing.T, output *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level      string
		wantLevels []string
	}{
		{level: "debug", wantLevels: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "info", wantLevels: []string{"INFO", "WARN", "ERROR"}},
		{level: "warn", wantLevels: []string{"WARN", "ERROR"}},
		{level: "error", wantLevels: []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, output := newBufferLogger(t, Config{Level: tt.level, Format: "json"})

			l.Debug("claim skipped")
			l.Info("application submitted")
			l.Warn("application already claimed")
			l.Error("publish failed")

			var got []string
			for _, entry := range decodeLines(t, output) {
				got = append(got, entry["level"].(string))
			}
			assert.Equal(t, tt.wantLevels, got)
		})
	}
}

func TestNew_JSONAttributes(t *testing.T) {
	l, output := newBufferLogger(t, Config{Level: "info", Format: "json"})

	l.Info("HTTP request",
		slog.String("method", "POST"),
		slog.String("path", "/api/v1/job-offers"),
		slog.Int("status", 201),
		slog.Bool("authenticated", true),
	)

	entries := decodeLines(t, output)
	require.Len(t, entries, 1)
	assert.Equal(t, "HTTP request", entries[0]["msg"])
	assert.Equal(t, "POST", entries[0]["method"])
	assert.Equal(t, "/api/v1/job-offers", entries[0]["path"])
	assert.Equal(t, float64(201), entries[0]["status"])
	assert.Equal(t, true, entries[0]["authenticated"])
	assert.Contains(t, entries[0], "time")
}

func TestNew_Source(t *testing.T) {
	l, output := newBufferLogger(t, Config{Level: "info", Format: "json", EnableSource: true})

	l.Info("with source")

	entries := decodeLines(t, output)
	require.Len(t, entries, 1)
	source, ok := entries[0]["source"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, source, "file")
	assert.Contains(t, source, "line")
}

func TestNew_Console(t *testing.T) {
	l, output := newBufferLogger(t, Config{Level: "info", Format: "console"})

	l.Info("worker started", slog.Int("concurrency", 4))

	assert.Contains(t, output.String(), "INF")
	assert.Contains(t, output.String(), "worker started")
	assert.Contains(t, output.String(), "concurrency")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("written to file", slog.String("component", "api"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "written to file", entry["msg"])
	assert.Equal(t, "api", entry["component"])
}

func TestNew_FileOutputError(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "api.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestNewDefault(t *testing.T) {
	l := NewDefault()
	require.NotNil(t, l)
	assert.NotNil(t, l.Logger)
	assert.NoError(t, l.Close())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":     slog.LevelDebug,
		"DEBUG":     slog.LevelDebug,
		"info":      slog.LevelInfo,
		"warn":      slog.LevelWarn,
		" Warning ": slog.LevelWarn,
		"error":     slog.LevelError,
		"invalid":   slog.LevelInfo,
		"":          slog.LevelInfo,
	}

	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(level))
		})
	}
}

func TestLogger_Derived(t *testing.T) {
	t.Run("WithAttrs", func(t *testing.T) {
		l, output := newBufferLogger(t, Config{Format: "json"})

		l.WithAttrs(slog.String("worker_id", "w-1")).Info("started")

		entries := decodeLines(t, output)
		require.Len(t, entries, 1)
		assert.Equal(t, "w-1", entries[0]["worker_id"])
	})

	t.Run("With", func(t *testing.T) {
		l, output := newBufferLogger(t, Config{Format: "json"})

		l.With("service", "api", "version", 2).Info("ready")

		entries := decodeLines(t, output)
		require.Len(t, entries, 1)
		assert.Equal(t, "api", entries[0]["service"])
		assert.Equal(t, float64(2), entries[0]["version"])
	})
}
