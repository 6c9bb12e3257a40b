// Package app wires configuration, logging and the fioriscope client into the
// CLI commands.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope"
	"github.com/fioriscope/fioriscope/cmd/application"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

var _ application.Application = (*App)(nil)

// App holds the dependencies shared by every command.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// client is created on first use
	mu     sync.RWMutex
	client fioriscope.Client
}

// New creates a new App with configuration loaded from the default sources.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format, possibly empty.
func (a *App) OutputFormat() string { return a.config.Format }

// OutputDir returns the directory workbooks are written to.
func (a *App) OutputDir() string { return a.config.OutputDir }

// Client returns the shared client, creating it on first use.
func (a *App) Client() (fioriscope.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	c, err := fioriscope.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

func (a *App) clientOptions() []fioriscope.Option {
	cfg := a.config
	opts := []fioriscope.Option{
		fioriscope.WithBaseURL(cfg.BaseURL),
		fioriscope.WithLanguage(cfg.Language),
		fioriscope.WithHTTPTimeout(cfg.HTTPTimeout),
		fioriscope.WithRetry(cfg.MaxAttempts, cfg.RetryBaseDelay),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, fioriscope.WithRateLimit(cfg.RateLimit, cfg.Burst))
	}
	return opts
}

// Shutdown releases application resources. A batch still in flight is
// stopped by its own context.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c != nil && c.Busy() {
		a.logger.Warn().Msg("Shutting down with a batch run in flight")
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a prebuilt client, typically one backed by a fake source.
func WithClient(c fioriscope.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
