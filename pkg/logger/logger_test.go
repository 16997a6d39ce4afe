package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	var console, file bytes.Buffer

	l := newLogger(&console, &file, "weather-widget", zerolog.InfoLevel)
	l.Info().Str("query", "Paris").Msg("loading current weather")
	l.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(file.Bytes()), &entry))
	assert.Equal(t, "weather-widget", entry["service"])
	assert.Equal(t, "Paris", entry["query"])
	assert.Equal(t, "info", entry["level"])
	assert.NotContains(t, file.String(), "hidden")

	assert.Contains(t, console.String(), "loading current weather")
}

func TestNewFileLogger_EncodesJSON(t *testing.T) {
	var buf bytes.Buffer

	l := newFileLogger(zapcore.AddSync(&buf))
	l.Info("request completed", zap.Int("status", 200))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.InDelta(t, 200, entry["status"], 0)
	assert.Contains(t, entry, "ts")
}
