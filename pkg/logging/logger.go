// Package logging provides structured logging for fioriscope using zerolog.
// It offers human-readable console output when attached to a terminal and
// structured JSON output everywhere else.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("fiori_id", "F0842").Msg("Fetching application")
//
//	// Carry identifier context through a batch run
//	ctx := logging.WithIdentifier(context.Background(), "F0842")
//	logging.FromContext(ctx).Debug().Str("facet", "spaces").Msg("Facet fetched")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(EnvConfig())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's log.Logger.
// It is not safe to call while other goroutines are logging.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info event on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Err starts an error event for err on the default logger. A nil err logs at
// info level.
func Err(err error) *zerolog.Event { return defaultLogger.Err(err) }

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
