package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{" error ", logrus.ErrorLevel},
		{"bogus", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, LogLevelFromString(tt.input))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "debug", Format: "json", Output: &buf})

	logger.WithField("path", ".gt-changes.json").Debug("loaded changes")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded changes", entry["msg"])
	assert.Equal(t, ".gt-changes.json", entry["path"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefaultLogger()
	defer SetDefaultLogger(original)

	replacement := Discard()
	SetDefaultLogger(replacement)
	assert.Same(t, replacement, GetDefaultLogger())
}
