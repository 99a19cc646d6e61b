package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	envLogLevel = "CONFIGBLOCK_LOG_LEVEL"
	envJSONLog  = "CONFIGBLOCK_JSON_LOG"

	linePrefix = "📡 "
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(envJSONLog) == "1"

	// Prefix only human-readable output
	if !jsonFormat {
		output = NewPrefixWriter(linePrefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(envLogLevel)
	if level == "" {
		level = "warn"
	}
	return level
}

// ResolveLogLevel prefers an explicit flag value over the environment
func ResolveLogLevel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return GetLogLevel()
}
