// Package events provides a unified event system for live batch progress.
//
// A Broker connects the fioriscope client hooks to every transport (WebSocket,
// SSE) through one pipeline, so a hook publishes once and each transport
// adapts the event to its own wire format.
package events

import "time"

// EventType represents the type of batch event.
type EventType string

// Event types.
const (
	// Batch events (from client hooks).
	RunProgress  EventType = "run.progress"
	RunResults   EventType = "run.results"
	RunCompleted EventType = "run.completed"
	RunFailed    EventType = "run.failed"

	// ExportReady is published once a workbook is cached for download.
	ExportReady EventType = "export.ready"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a batch event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
