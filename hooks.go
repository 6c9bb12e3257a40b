package fioriscope

import (
	"sync"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/batch"
)

// Hook function types for batch events
type (
	// ProgressHook is called before each identifier is fetched
	ProgressHook func(runID string, p apps.Progress)

	// ResultsHook is called after each identifier with all results so far
	ResultsHook func(runID string, results []apps.Aggregate)

	// RunCompleteHook is called once a run has processed every identifier
	RunCompleteHook func(state *apps.State)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnProgress(ProgressHook)
	OnResults(ResultsHook)
	OnRunComplete(RunCompleteHook)
}

// Compile-time check that hooks can observe a batch.
var _ batch.Observer = (*hooks)(nil)

// hooks manages event callbacks for batch runs
type hooks struct {
	mu         sync.RWMutex
	onProgress []ProgressHook
	onResults  []ResultsHook
	onComplete []RunCompleteHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) register(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// OnProgress implements batch.Observer.
func (h *hooks) OnProgress(runID string, p apps.Progress) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onProgress {
		fn(runID, p)
	}
}

// OnResults implements batch.Observer.
func (h *hooks) OnResults(runID string, results []apps.Aggregate) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onResults {
		fn(runID, results)
	}
}

func (h *hooks) triggerComplete(state *apps.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onComplete {
		fn(state)
	}
}

// OnProgress registers a callback for progress updates.
func (c *client) OnProgress(fn ProgressHook) {
	c.hooks.register(func() { c.hooks.onProgress = append(c.hooks.onProgress, fn) })
}

// OnResults registers a callback for per-identifier results.
func (c *client) OnResults(fn ResultsHook) {
	c.hooks.register(func() { c.hooks.onResults = append(c.hooks.onResults, fn) })
}

// OnRunComplete registers a callback for finished runs.
func (c *client) OnRunComplete(fn RunCompleteHook) {
	c.hooks.register(func() { c.hooks.onComplete = append(c.hooks.onComplete, fn) })
}
