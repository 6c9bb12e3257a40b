package fioriscope

import (
	"context"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/batch"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Runner = (*client)(nil)

// Runner executes batch runs, at most one at a time.
type Runner interface {
	// Run processes cfg and records it as the last run.
	// It returns errors.ErrBusy while another run is in flight.
	Run(ctx context.Context, cfg apps.RunConfig, observers ...batch.Observer) (*apps.State, error)

	// Rerun repeats the last run configuration.
	Rerun(ctx context.Context, observers ...batch.Observer) (*apps.State, error)

	// Last returns the state of the most recent completed run.
	Last() (*apps.State, bool)

	// LastConfig returns the configuration of the most recent run.
	LastConfig() (apps.RunConfig, bool)

	// Busy reports whether a run is in flight.
	Busy() bool
}

// Run processes cfg. Extra observers receive the same callbacks as the
// registered hooks, after them.
func (c *client) Run(ctx context.Context, cfg apps.RunConfig, observers ...batch.Observer) (*apps.State, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, errors.ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	c.lastConfig = &cfg
	c.mu.Unlock()

	obs := append(batch.Observers{c.hooks}, observers...)
	state, err := c.runner.Run(ctx, cfg, obs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.last = state
	c.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("run_id", state.RunID).Msg("Run recorded")
	c.hooks.triggerComplete(state)
	return state, nil
}

// Rerun repeats the last configuration.
func (c *client) Rerun(ctx context.Context, observers ...batch.Observer) (*apps.State, error) {
	cfg, ok := c.LastConfig()
	if !ok {
		return nil, errors.ErrNoPreviousRun
	}
	return c.Run(ctx, cfg, observers...)
}

// Last returns the most recent completed run.
func (c *client) Last() (*apps.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return nil, false
	}
	snap := c.last.Snapshot()
	return &snap, true
}

// LastConfig returns the most recent run configuration.
func (c *client) LastConfig() (apps.RunConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastConfig == nil {
		return apps.RunConfig{}, false
	}
	return *c.lastConfig, true
}

// Busy reports whether a run is in flight.
func (c *client) Busy() bool {
	return c.busy.Load()
}
