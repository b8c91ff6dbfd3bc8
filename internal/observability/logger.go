package observability

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger(LoggerConfig{})
)

// NewLogger creates a logrus logger for diagnostic output.
// Diagnostics go to stderr by default so they never mix with command output.
func NewLogger(config LoggerConfig) *logrus.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(config.Output)
	logger.SetLevel(LogLevelFromString(config.Level))

	switch strings.ToLower(config.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	return logger
}

// LogLevelFromString parses a level name, falling back to warn
func LogLevelFromString(level string) logrus.Level {
	if level == "" {
		return logrus.WarnLevel
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.WarnLevel
	}
	return parsed
}

// SetDefaultLogger sets the process-wide logger
func SetDefaultLogger(logger *logrus.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// GetDefaultLogger returns the process-wide logger
func GetDefaultLogger() *logrus.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Discard returns a logger that drops everything, for tests and quiet callers.
func Discard() *logrus.Logger {
	return NewLogger(LoggerConfig{Output: io.Discard, Level: "panic"})
}
