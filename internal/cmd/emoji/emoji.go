// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols shared by every command's terminal output.
const (
	// Success marks a finished operation or a successful identifier.
	Success = "✓"

	// Error marks a failed operation or identifier.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "✗"

	// Warning marks deprecations and non-fatal problems.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Progress prefixes the running percentage.
	Progress = "…"
)
