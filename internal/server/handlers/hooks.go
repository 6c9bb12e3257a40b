package handlers

import (
	"github.com/agentstation/utc"

	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/export"
	"github.com/fioriscope/fioriscope/pkg/render"
)

// OnProgress publishes progress and tracks the run in flight.
func (h *Handlers) OnProgress(runID string, p apps.Progress) {
	h.mu.Lock()
	if h.live == nil || h.live.RunID != runID {
		h.live = &apps.State{RunID: runID, StartedAt: utc.Now()}
		if cfg, ok := h.client.LastConfig(); ok {
			h.live.Release = cfg.Release
		}
	}
	h.live.Progress = p
	h.mu.Unlock()

	h.broker.Publish(events.RunProgress, map[string]any{
		"runId":     runID,
		"processed": p.Processed,
		"total":     p.Total,
		"percent":   p.Rounded(),
		"text":      render.ProgressText(p),
	})
}

// OnResults publishes the status lines so far.
func (h *Handlers) OnResults(runID string, results []apps.Aggregate) {
	h.mu.Lock()
	if h.live != nil && h.live.RunID == runID {
		h.live.Results = results
	}
	h.mu.Unlock()

	h.broker.Publish(events.RunResults, map[string]any{
		"runId":    runID,
		"statuses": render.StatusLines(results),
	})
}

// OnRunComplete publishes the run summary and pre-renders its workbook so the
// first download does not have to wait.
func (h *Handlers) OnRunComplete(state *apps.State) {
	h.mu.Lock()
	h.live = nil
	h.mu.Unlock()

	succeeded, deprecated, failed := state.Counts()
	h.broker.Publish(events.RunCompleted, map[string]any{
		"runId":      state.RunID,
		"release":    state.Release,
		"succeeded":  succeeded,
		"deprecated": deprecated,
		"failed":     failed,
		"duration":   state.Duration().String(),
	})

	rep, err := export.Build(state)
	if err != nil {
		h.logger.Debug().Err(err).Str("run_id", state.RunID).Msg("No workbook for run")
		return
	}
	if _, err := h.storeArtifact(state.RunID, rep); err != nil {
		h.logger.Error().Err(err).Str("run_id", state.RunID).Msg("Failed to render workbook")
	}
}
