package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope/pkg/logging"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger creates the logger described by config.
// Log level precedence (highest to lowest):
//  1. --log-level flag or LOG_LEVEL
//  2. -v/--verbose (debug)
//  3. -q/--quiet (warn)
//  4. info
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogOutput,
		TimeFormat: "kitchen",
		NoColor:    config.NoColor,
		AddCaller:  level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		if slices.Contains(validLogLevels, config.LogLevel) {
			return config.LogLevel
		}
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, "info")
		return "info"
	}

	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	case config.Verbose:
		return "debug"
	case config.Quiet:
		return "warn"
	default:
		return "info"
	}
}
