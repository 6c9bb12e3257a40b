// Package adapters connects the event broker to the live-progress transports.
package adapters

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/internal/server/sse"
	ws "github.com/fioriscope/fioriscope/internal/server/websocket"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// ErrClosed is returned by Send once the subscriber has been closed.
var ErrClosed = errors.New("transport subscriber closed")

// Subscriber forwards broker events to one transport. After Close it
// refuses events, so a broker that outlives the transport logs the drop
// instead of writing to a stopped hub.
type Subscriber struct {
	transport string
	forward   func(events.Event)
	closed    atomic.Bool
}

var _ events.Subscriber = (*Subscriber)(nil)

// Send implements events.Subscriber.
func (s *Subscriber) Send(event events.Event) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.forward(event)
	return nil
}

// Close implements events.Subscriber. The transport itself keeps running;
// its lifecycle belongs to the server.
func (s *Subscriber) Close() error {
	s.closed.Store(true)
	return nil
}

// Transport names the transport behind s.
func (s *Subscriber) Transport() string {
	return s.transport
}

// WebSocket forwards events to every client of hub as JSON messages.
func WebSocket(hub *ws.Hub) *Subscriber {
	return &Subscriber{
		transport: "websocket",
		forward: func(e events.Event) {
			hub.Broadcast(ws.Message{Type: string(e.Type), Timestamp: e.Timestamp, Data: e.Data})
		},
	}
}

// SSE forwards events to every stream of b. Each frame gets a fresh id so
// EventSource clients can resume with Last-Event-ID.
func SSE(b *sse.Broadcaster) *Subscriber {
	return &Subscriber{
		transport: "sse",
		forward: func(e events.Event) {
			b.Broadcast(sse.Event{Event: string(e.Type), ID: uuid.NewString(), Data: e.Data})
		},
	}
}
