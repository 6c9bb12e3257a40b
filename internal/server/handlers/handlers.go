// Package handlers provides HTTP request handlers for the fioriscope API.
//
// Handlers are organized by concern:
//
//   - runs.go: starting a batch and reading its live state
//   - export.go: workbook download
//   - hooks.go: client hook callbacks feeding the event broker
//   - health.go: liveness and readiness
//   - realtime.go: WebSocket and SSE streams
package handlers

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope"
	"github.com/fioriscope/fioriscope/internal/server/cache"
	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/internal/server/sse"
	ws "github.com/fioriscope/fioriscope/internal/server/websocket"
	"github.com/fioriscope/fioriscope/pkg/apps"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         fioriscope.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time

	// live mirrors the run in flight, fed by the client hooks
	mu   sync.RWMutex
	live *apps.State
}

// New creates a new Handlers instance.
func New(
	client fioriscope.Client,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		client:         client,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      time.Now(),
	}
}
