// Package sse provides Server-Sent Events support for live batch progress.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope/pkg/constants"
)

// Broadcaster fans events out to EventSource streams. Streams register
// synchronously, so a client that connects before Run starts is already
// counted. Recent frames carrying an ID are retained so a reconnecting
// client can resume from its Last-Event-ID.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
	recent  []Event
	closed  bool
	events  chan Event
	logger  *zerolog.Logger
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]struct{}),
		events:  make(chan Event, constants.ChannelBufferSize),
		logger:  logger,
	}
}

// Run delivers broadcast events and blocks until ctx is cancelled, at which
// point every open stream is ended.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return
		case event := <-b.events:
			b.deliver(event)
		}
	}
}

func (b *Broadcaster) shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		close(client)
	}
	clear(b.clients)
	b.closed = true
	b.logger.Info().Msg("SSE broadcaster shut down")
}

func (b *Broadcaster) deliver(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if event.ID != "" {
		if len(b.recent) == constants.SSEReplaySize {
			b.recent = slices.Delete(b.recent, 0, 1)
		}
		b.recent = append(b.recent, event)
	}
	for client := range b.clients {
		select {
		case client <- event:
		default:
			b.logger.Warn().Str("event", event.Event).Msg("SSE client buffer full, event skipped")
		}
	}
}

// subscribe registers a stream and returns the retained frames after
// lastID. An unknown or empty lastID yields no backlog. ok is false once
// the broadcaster has shut down.
func (b *Broadcaster) subscribe(lastID string) (client chan Event, backlog []Event, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, nil, false
	}
	client = make(chan Event, constants.ChannelBufferSize)
	b.clients[client] = struct{}{}
	if lastID != "" {
		if i := slices.IndexFunc(b.recent, func(e Event) bool { return e.ID == lastID }); i >= 0 {
			backlog = slices.Clone(b.recent[i+1:])
		}
	}
	b.logger.Info().Int("total_clients", len(b.clients)).Int("replayed", len(backlog)).Msg("SSE client connected")
	return client, backlog, true
}

func (b *Broadcaster) unsubscribe(client chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; !ok {
		return
	}
	delete(b.clients, client)
	close(client)
	b.logger.Info().Int("total_clients", len(b.clients)).Msg("SSE client disconnected")
}

// Broadcast queues an event for every connected stream. The event is
// dropped when the queue is full.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Msg("SSE broadcast channel full, event dropped")
	}
}

// ClientCount returns the number of connected SSE clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP streams events to one client until it disconnects or the
// broadcaster shuts down.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, backlog, ok := b.subscribe(r.Header.Get("Last-Event-ID"))
	if !ok {
		http.Error(w, "Event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer b.unsubscribe(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	b.writeEvent(w, flusher, Event{
		Event: "connected",
		Data: map[string]any{
			"message":   "Connected to fioriscope batch stream",
			"timestamp": time.Now().UTC(),
		},
	})
	for _, event := range backlog {
		b.writeEvent(w, flusher, event)
	}

	for {
		select {
		case event, open := <-client:
			if !open {
				return
			}
			b.writeEvent(w, flusher, event)
		case <-r.Context().Done():
			return
		}
	}
}

// writeEvent writes one SSE frame and flushes it.
func (b *Broadcaster) writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) {
	if event.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event data")
		return
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)

	flusher.Flush()
}

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"` // SSE event name
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}
