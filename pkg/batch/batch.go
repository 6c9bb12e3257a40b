// Package batch runs the per-identifier aggregation over a list of
// identifiers, one at a time, isolating failures and reporting progress.
package batch

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/logging"
)

// Aggregator produces the aggregate of one identifier.
type Aggregator interface {
	Aggregate(ctx context.Context, fioriID, release string) (apps.Aggregate, error)
}

// Runner executes batches sequentially in input order.
type Runner struct {
	aggregator Aggregator
	newRunID   func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithRunIDFunc overrides how run IDs are generated.
func WithRunIDFunc(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// NewRunner creates a Runner over aggregator.
func NewRunner(aggregator Aggregator, opts ...Option) *Runner {
	r := &Runner{
		aggregator: aggregator,
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every identifier of cfg and returns the final state.
//
// Each identifier yields exactly one result in input order: a Success, or an
// Error carrying the failure message. A failing identifier never stops the
// batch. Once ctx is cancelled the remaining identifiers are recorded as
// errors without being fetched. The only error returned is a validation error
// for cfg, in which case nothing runs. Identifiers and release are
// normalized first.
func (r *Runner) Run(ctx context.Context, cfg apps.RunConfig, obs Observer) (*apps.State, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = nopObserver{}
	}

	state := &apps.State{
		RunID:     r.newRunID(),
		Release:   cfg.Release,
		Results:   make([]apps.Aggregate, 0, len(cfg.Identifiers)),
		Progress:  apps.Progress{Total: len(cfg.Identifiers)},
		StartedAt: utc.Now(),
	}

	ctx = logging.WithRunID(ctx, state.RunID)
	ctx = logging.WithRelease(ctx, cfg.Release)
	log := logging.FromContext(ctx)
	log.Info().Int("total", state.Progress.Total).Msg("Batch started")

	for _, id := range cfg.Identifiers {
		state.Progress.Processed++
		obs.OnProgress(state.RunID, state.Progress)

		state.Results = append(state.Results, r.process(ctx, id, cfg.Release))
		obs.OnResults(state.RunID, append([]apps.Aggregate(nil), state.Results...))
	}

	finished := utc.Now()
	state.FinishedAt = &finished

	ok, deprecated, failed := state.Counts()
	log.Info().
		Int("succeeded", ok).
		Int("deprecated", deprecated).
		Int("failed", failed).
		Dur("duration", state.Duration()).
		Msg("Batch finished")

	return state, nil
}

func (r *Runner) process(ctx context.Context, id, release string) apps.Aggregate {
	log := logging.FromContext(logging.WithIdentifier(ctx, id))

	if err := ctx.Err(); err != nil {
		log.Debug().Err(err).Msg("Skipping identifier after cancellation")
		return apps.NewFailure(id, err.Error())
	}

	agg, err := r.aggregator.Aggregate(ctx, id, release)
	if err != nil {
		log.Warn().Err(err).Msg("Identifier failed")
		return apps.NewFailure(id, err.Error())
	}

	log.Info().Bool("deprecated", agg.Deprecated).Msg("Identifier processed")
	return agg
}
