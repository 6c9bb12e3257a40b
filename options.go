package fioriscope

import (
	"time"

	"github.com/fioriscope/fioriscope/pkg/aggregate"
	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/retry"
)

// options holds the configuration of a Client.
type options struct {
	baseURL        string
	language       string
	httpTimeout    time.Duration
	rateLimit      float64
	burst          int
	maxAttempts    int
	retryBaseDelay time.Duration

	// test seams
	source aggregate.Source
	wait   retry.WaitFunc
	runID  func() string
}

// Option is a function that configures a Client.
type Option func(*options)

func defaults() *options {
	return &options{
		baseURL:        constants.DefaultBaseURL,
		language:       constants.DefaultLanguage,
		httpTimeout:    constants.DefaultHTTPTimeout,
		maxAttempts:    constants.MaxRetries,
		retryBaseDelay: constants.RetryBackoff,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) validate() error {
	if o.maxAttempts < 1 {
		return errors.NewConfigError("retry", "max attempts must be at least 1", nil)
	}
	if o.retryBaseDelay < 0 {
		return errors.NewConfigError("retry", "base delay must not be negative", nil)
	}
	if o.httpTimeout < 0 {
		return errors.NewConfigError("http", "timeout must not be negative", nil)
	}
	return nil
}

// WithBaseURL sets the catalog service root.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithLanguage sets the language key of upstream queries.
func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.language = lang
		}
	}
}

// WithHTTPTimeout sets the per-request timeout; zero disables it.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = d
	}
}

// WithRateLimit throttles upstream requests to rps per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = rps
		o.burst = burst
	}
}

// WithRetry sets the attempts and base backoff of retried queries.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(o *options) {
		o.maxAttempts = maxAttempts
		o.retryBaseDelay = baseDelay
	}
}

// WithSource replaces the catalog adapter, typically with a fake in tests.
func WithSource(src aggregate.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithWaitFunc replaces the backoff sleep.
func WithWaitFunc(w retry.WaitFunc) Option {
	return func(o *options) {
		o.wait = w
	}
}

// WithRunIDFunc overrides run ID generation.
func WithRunIDFunc(fn func() string) Option {
	return func(o *options) {
		o.runID = fn
	}
}
