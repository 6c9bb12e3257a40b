package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fioriscope/fioriscope/internal/server/cache"
	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/internal/server/response"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/export"
	"github.com/fioriscope/fioriscope/pkg/logging"
)

// HandleExport handles GET /api/v1/export. With ?refresh=true the last run
// configuration is executed again and the fresh workbook is returned;
// otherwise the cached workbook of the last run is served.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	var (
		artifact *cache.Artifact
		err      error
	)
	if refresh {
		artifact, err = h.refreshArtifact(r)
	} else {
		artifact, err = h.lastArtifact()
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Bool("refresh", refresh).Msg("Export failed")
		response.ErrorFromType(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

// refreshArtifact re-runs the last configuration. The completion hook has
// normally cached the new run's workbook by then; it is rendered here only
// when it has not.
func (h *Handlers) refreshArtifact(r *http.Request) (*cache.Artifact, error) {
	rep, state, err := h.client.Download(r.Context())
	if err != nil {
		return nil, err
	}
	if a, ok := h.cache.Artifact(state.RunID); ok {
		return a, nil
	}
	return h.storeArtifact(state.RunID, rep)
}

func (h *Handlers) lastArtifact() (*cache.Artifact, error) {
	state, ok := h.client.Last()
	if !ok {
		return nil, errors.ErrNoPreviousRun
	}
	if a, ok := h.cache.Artifact(state.RunID); ok {
		return a, nil
	}
	rep, err := export.Build(state)
	if err != nil {
		return nil, err
	}
	return h.storeArtifact(state.RunID, rep)
}

// storeArtifact renders rep and caches it under runID.
func (h *Handlers) storeArtifact(runID string, rep *export.Report) (*cache.Artifact, error) {
	data, err := rep.Bytes()
	if err != nil {
		return nil, err
	}
	a := &cache.Artifact{
		RunID:       runID,
		Name:        rep.FileName(),
		ContentType: export.ContentType,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
	h.cache.PutArtifact(a)

	h.broker.Publish(events.ExportReady, map[string]any{
		"runId":    runID,
		"fileName": a.Name,
		"size":     len(data),
		"rows":     len(rep.Rows),
	})
	return a, nil
}
