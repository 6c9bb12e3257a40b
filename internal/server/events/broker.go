package events

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope/pkg/constants"
)

// Broker fans batch events out to every registered subscriber.
//
// Subscriptions take effect immediately, before or after Run starts.
// Events are queued by Publish and delivered in order by Run.
type Broker struct {
	mu     sync.RWMutex
	subs   []Subscriber
	closed bool

	queue  chan Event
	logger *zerolog.Logger
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, constants.ChannelBufferSize),
		logger: logger,
	}
}

// Run delivers queued events until ctx is cancelled, then closes every
// subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return
		case event := <-b.queue:
			b.deliver(event)
		}
	}
}

func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("event_type", string(event.Type)).
				Msg("Event not delivered")
		}
	}
	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Int("subscribers", len(subs)).
		Msg("Event delivered")
}

func (b *Broker) shutdown() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	b.logger.Info().Int("subscribers", len(subs)).Msg("Event broker shut down")
}

// Publish queues an event for all subscribers. It never blocks; when the
// queue is full the event is dropped and logged.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{Type: eventType, Timestamp: time.Now().UTC(), Data: data}
	select {
	case b.queue <- event:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Msg("Event queue full, event dropped")
	}
}

// Subscribe adds sub to the delivery list. After shutdown sub is closed
// right away.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return
	}
	b.subs = append(b.subs, sub)
	total := len(b.subs)
	b.mu.Unlock()

	b.logger.Debug().Int("subscribers", total).Msg("Subscriber added")
}

// Unsubscribe removes sub and closes it. Unknown subscribers are ignored.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	i := slices.Index(b.subs, sub)
	if i < 0 {
		b.mu.Unlock()
		return
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	b.mu.Unlock()

	_ = sub.Close()
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
