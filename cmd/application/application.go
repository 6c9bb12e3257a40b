// Package application provides the application interface for fioriscope commands.
//
// The Application interface is the contract between the application layer and
// command implementations, so commands and the HTTP server can be tested with
// a mock instead of the real configuration and upstream client.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            fs, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            state, err := fs.Run(cmd.Context(), cfg)
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope"
)

// Application provides what commands need from the running CLI.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the shared fioriscope client (lazy-initialized).
	// The client serializes runs, so the same instance is handed to every caller.
	Client() (fioriscope.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// OutputDir returns the directory generated workbooks are written to.
	OutputDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
