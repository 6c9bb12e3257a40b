package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fioriscope/fioriscope/pkg/constants"
)

func TestBroadcaster_NewBroadcaster(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	require.NotNil(t, b)
	assert.NotNil(t, b.clients)
	assert.NotNil(t, b.events)
	assert.False(t, b.closed)
	assert.Equal(t, 0, b.ClientCount())
}

func TestBroadcaster_BasicOperation(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	client, backlog, ok := b.subscribe("")
	require.True(t, ok)
	assert.Empty(t, backlog)
	assert.Equal(t, 1, b.ClientCount())

	b.Broadcast(Event{Event: "run.progress", Data: map[string]any{"processed": 1}})

	select {
	case got := <-client:
		assert.Equal(t, "run.progress", got.Event)
	case <-time.After(time.Second):
		t.Fatal("client did not receive event")
	}
}

func TestBroadcaster_Shutdown(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(stopped)
	}()

	client, _, ok := b.subscribe("")
	require.True(t, ok)

	cancel()
	<-stopped

	_, open := <-client
	assert.False(t, open, "client channel should be closed on shutdown")
	assert.Equal(t, 0, b.ClientCount())

	// Deferred cleanup from a stream that ended with the shutdown is a no-op.
	b.unsubscribe(client)

	_, _, ok = b.subscribe("")
	assert.False(t, ok, "no new streams after shutdown")

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBroadcaster_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	client, _, ok := b.subscribe("")
	require.True(t, ok)
	assert.Equal(t, 1, b.ClientCount())

	b.unsubscribe(client)
	b.unsubscribe(client)
	assert.Equal(t, 0, b.ClientCount())
}

func TestBroadcaster_ResumeFromLastEventID(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	b.deliver(Event{Event: "run.progress", ID: "1"})
	b.deliver(Event{Event: "run.progress"})
	b.deliver(Event{Event: "run.progress", ID: "2"})
	b.deliver(Event{Event: "run.completed", ID: "3"})

	tests := []struct {
		name   string
		lastID string
		want   []string
	}{
		{"no header", "", nil},
		{"unknown id", "zzz", nil},
		{"middle", "1", []string{"2", "3"}},
		{"latest", "3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backlog, ok := b.subscribe(tt.lastID)
			require.True(t, ok)
			defer b.unsubscribe(client)

			var ids []string
			for _, e := range backlog {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBroadcaster_ReplayIsBounded(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	for i := range constants.SSEReplaySize + 10 {
		b.deliver(Event{Event: "run.progress", ID: strconv.Itoa(i)})
	}
	assert.Len(t, b.recent, constants.SSEReplaySize)
	assert.Equal(t, "10", b.recent[0].ID)

	// Frames older than the window cannot be resumed from.
	_, backlog, ok := b.subscribe("0")
	require.True(t, ok)
	assert.Empty(t, backlog)
}

func TestBroadcaster_ServeHTTP(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	assert.Equal(t, 1, b.ClientCount())
	b.Broadcast(Event{Event: "run.completed", ID: "abc", Data: map[string]any{"runId": "r1"}})

	var frame []string
	for len(frame) < 3 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "data: {\"message\"") {
			continue
		}
		frame = append(frame, line)
	}
	assert.Equal(t, []string{"event: run.completed", "id: abc", `data: {"runId":"r1"}`}, frame)
}
