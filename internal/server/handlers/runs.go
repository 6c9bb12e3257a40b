package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/internal/server/response"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/logging"
	"github.com/fioriscope/fioriscope/pkg/render"
)

// maxRunBody bounds the JSON body of POST /runs.
const maxRunBody = 1 << 20

// runRequest is the body of POST /api/v1/runs. fioriIds may be a JSON array or
// a single whitespace-separated string, as typed into a text box.
type runRequest struct {
	FioriIDs  identifierList `json:"fioriIds"`
	ReleaseID string         `json:"releaseId"`
}

type identifierList []string

func (l *identifierList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = apps.ParseIdentifiers(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.NewValidationError("fioriIds", string(data), "must be a string or an array of strings")
	}
	*l = list
	return nil
}

// RunView is the JSON shape of a batch state.
type RunView struct {
	RunID        string              `json:"runId"`
	Release      string              `json:"releaseId"`
	Busy         bool                `json:"busy"`
	Progress     apps.Progress       `json:"progress"`
	ProgressText string              `json:"progressText"`
	Statuses     []render.StatusLine `json:"statuses"`
	Results      []apps.Aggregate    `json:"results"`
	Succeeded    int                 `json:"succeeded"`
	Deprecated   int                 `json:"deprecated"`
	Failed       int                 `json:"failed"`
	StartedAt    time.Time           `json:"startedAt"`
	FinishedAt   *time.Time          `json:"finishedAt,omitempty"`
}

// NewRunView builds the view of state.
func NewRunView(state *apps.State, busy bool) RunView {
	succeeded, deprecated, failed := state.Counts()
	view := RunView{
		RunID:        state.RunID,
		Release:      state.Release,
		Busy:         busy,
		Progress:     state.Progress,
		ProgressText: render.ProgressText(state.Progress),
		Statuses:     render.StatusLines(state.Results),
		Results:      state.Results,
		Succeeded:    succeeded,
		Deprecated:   deprecated,
		Failed:       failed,
		StartedAt:    state.StartedAt.Time,
	}
	if state.FinishedAt != nil {
		finished := state.FinishedAt.Time
		view.FinishedAt = &finished
	}
	return view
}

// HandleStartRun handles POST /api/v1/runs. The run executes within the
// request; progress is streamed over the realtime endpoints meanwhile.
func (h *Handlers) HandleStartRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRunBody)).Decode(&req); err != nil {
		if errors.IsValidationError(err) {
			response.ErrorFromType(w, err)
			return
		}
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	cfg, err := apps.NewRunConfig(req.FioriIDs, req.ReleaseID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info().
		Int("identifiers", len(cfg.Identifiers)).
		Str("release", cfg.Release).
		Msg("Starting batch run")

	state, err := h.client.Run(r.Context(), cfg)
	if err != nil {
		if !errors.IsBusy(err) {
			h.broker.Publish(events.RunFailed, map[string]any{"message": err.Error()})
		}
		logger.Warn().Err(err).Msg("Batch run rejected")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, NewRunView(state, false))
}

// HandleCurrentRun handles GET /api/v1/runs/current: the run in flight if
// there is one, otherwise the last completed run.
func (h *Handlers) HandleCurrentRun(w http.ResponseWriter, _ *http.Request) {
	if h.client.Busy() {
		if live, ok := h.liveState(); ok {
			response.OK(w, NewRunView(live, true))
			return
		}
	}

	state, ok := h.client.Last()
	if !ok {
		response.ErrorFromType(w, errors.ErrNoPreviousRun)
		return
	}
	response.OK(w, NewRunView(state, h.client.Busy()))
}

func (h *Handlers) liveState() (*apps.State, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.live == nil {
		return nil, false
	}
	snap := h.live.Snapshot()
	return &snap, true
}
