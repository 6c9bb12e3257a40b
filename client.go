// Package fioriscope provides the main entry point for aggregating Fiori Apps
// Library catalog data. A Client runs batches of application identifiers
// against one release, reports progress through hooks, and turns the last
// run into a consolidated xlsx workbook.
//
// Example usage:
//
//	fs, err := fioriscope.New(fioriscope.WithRateLimit(5, 5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fs.OnProgress(func(runID string, p apps.Progress) {
//	    fmt.Println(render.ProgressText(p))
//	})
//
//	cfg, err := apps.NewRunConfig([]string{"F0842 F1234"}, "S28OP")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state, err := fs.Run(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := export.Build(state)
//	if err != nil {
//	    log.Fatal(err) // errors.ErrNoValidResults when nothing is exportable
//	}
//	path, err := report.WriteFile(".")
package fioriscope

import (
	"sync"
	"sync/atomic"

	"github.com/fioriscope/fioriscope/internal/sources/fiorilib"
	"github.com/fioriscope/fioriscope/internal/transport"
	"github.com/fioriscope/fioriscope/pkg/aggregate"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/batch"
	"github.com/fioriscope/fioriscope/pkg/retry"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs batches one at a time and remembers the last one.
type Client interface {

	// Runner executes batch runs
	Runner

	// Persistence writes the last run's workbook
	Persistence

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	runner  *batch.Runner
	hooks   *hooks

	// busy is set for the duration of a run
	busy atomic.Bool

	mu         sync.RWMutex
	last       *apps.State
	lastConfig *apps.RunConfig
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}

	source := o.source
	if source == nil {
		source = fiorilib.New(
			fiorilib.WithBaseURL(o.baseURL),
			fiorilib.WithLanguage(o.language),
			fiorilib.WithTransport(transport.New(
				transport.WithTimeout(o.httpTimeout),
				transport.WithRateLimit(o.rateLimit, o.burst),
			)),
		)
	}

	retryOpts := []retry.Option{
		retry.WithMaxAttempts(o.maxAttempts),
		retry.WithBaseDelay(o.retryBaseDelay),
	}
	if o.wait != nil {
		retryOpts = append(retryOpts, retry.WithWait(o.wait))
	}

	agg := aggregate.New(source, aggregate.WithRetry(retryOpts...))

	var runnerOpts []batch.Option
	if o.runID != nil {
		runnerOpts = append(runnerOpts, batch.WithRunIDFunc(o.runID))
	}

	return &client{
		options: o,
		runner:  batch.NewRunner(agg, runnerOpts...),
		hooks:   newHooks(),
	}, nil
}
