package server

import (
	"time"

	"github.com/fioriscope/fioriscope/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per client IP (0 to disable).
	RateLimit int

	// ArtifactTTL is how long a generated workbook stays downloadable.
	ArtifactTTL time.Duration

	// HTTP timeouts. WriteTimeout must cover a whole batch run, since
	// POST /runs answers once the run has finished.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		PathPrefix:   "/api/v1",
		CORSEnabled:  false,
		CORSOrigins:  []string{},
		RateLimit:    60,
		ArtifactTTL:  constants.ArtifactTTL,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
}
