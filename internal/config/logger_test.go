package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DefaultIsQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(Default().Log, &buf)
	logger.Info("should not appear")
	logger.Debug("nor this")

	assert.Empty(t, buf.String())
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug("translated", "mode", "run")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "translated", entry["msg"])
	assert.Equal(t, "run", entry["mode"])
}
