package handlers

import (
	"net/http"
	"time"

	"github.com/fioriscope/fioriscope/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "fioriscope-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	_, hasRun := h.client.Last()
	response.OK(w, map[string]any{
		"status":            "ready",
		"busy":              h.client.Busy(),
		"hasRun":            hasRun,
		"uptime":            time.Since(h.startTime).Round(time.Second).String(),
		"cache":             h.cache.GetStats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
