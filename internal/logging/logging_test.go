package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("estimate priced", zap.Float64("total", 2500))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "estimate priced", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, 2500.0, entry["total"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_ConsoleAndLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "loud", Format: "console"}, &buf)

	logger.Debug("hidden")
	logger.Warn("email not configured")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "email not configured")
}

func TestNewWithWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "DEBUG", Format: "json"}, &buf)

	logger.Debug("visible")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "visible")
}
