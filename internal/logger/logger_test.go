package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf, FormatText)

	l.Debug("Test", "debug message")
	l.Info("Test", "info message")
	l.Warn("Test", "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")

	l.SetLogLevel(LevelDebug)
	l.Debug("Test", "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLoggerJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf, FormatJSON)

	l.Error("Loader", "failed to open sheet: sheet=%s", "Sheet1")

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Loader", entry["component"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "failed to open sheet: sheet=Sheet1", entry["msg"])
}

func TestDiscardDropsEverything(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() {
		l.Error("Test", "nothing happens")
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "NONE", LogLevel(42).String())
}
