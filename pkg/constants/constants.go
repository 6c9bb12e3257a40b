// Package constants provides shared constants used throughout the fioriscope codebase.
// This includes upstream endpoints, timeouts, retry limits, spreadsheet layout
// and other values that should be consistent across the application.
package constants

import "time"

// Upstream catalog constants
const (
	// DefaultBaseURL is the OData service root of the Fiori Apps Library single-app service
	DefaultBaseURL = "https://fioriappslibrary.hana.ondemand.com/sap/fix/externalViewer/services/SingleApp.xsodata"

	// DefaultLanguage is the language tag sent with every upstream query
	DefaultLanguage = "EN"

	// DeprecatedState is the publication state that marks an application deprecated
	DeprecatedState = "Deprecated"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the catalog API
	DefaultHTTPTimeout = 30 * time.Second

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// AlertTTL is how long a user-visible alert stays on screen before it clears
	AlertTTL = 5 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the server
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of attempts for a retried upstream call
	MaxRetries = 3

	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256

	// SSEReplaySize is how many recent SSE frames are kept for Last-Event-ID resume
	SSEReplaySize = 64
)

// Export constants describe the generated workbook
const (
	// SheetName is the title of the single worksheet
	SheetName = "Fiori Apps Data"

	// FilePrefix is prepended to the release identifier in the workbook file name
	FilePrefix = "Fiori_Apps_Data_"

	// FileExtension is the workbook file extension
	FileExtension = ".xlsx"

	// ConsolidatedID is the Fiori ID cell of the synthetic summary row
	ConsolidatedID = "CONSOLIDATED"

	// ArtifactTTL is how long a generated workbook stays downloadable from the server
	ArtifactTTL = 30 * time.Minute
)
