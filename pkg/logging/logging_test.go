package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("env file loaded", "path", ".env")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "env file loaded")
	assert.Contains(t, out, "path=.env")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no colour")
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	require.NoError(t, Setup("debug"))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	assert.Error(t, Setup("loud"))
}
