package websocket

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_NewHub(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	require.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.broadcast)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := startHub(t)

	const numClients = 5
	clients := make([]*Client, numClients)
	for i := range clients {
		clients[i] = NewClient(fmt.Sprintf("client-%d", i), hub, nil)
		hub.Register(clients[i])
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == numClients }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: "run.progress", Data: map[string]any{"processed": 1}})

	for _, c := range clients {
		select {
		case msg := <-c.send:
			assert.Equal(t, "run.progress", msg.Type)
		case <-time.After(time.Second):
			t.Fatalf("%s did not receive message", c.ID())
		}
	}
}

func TestHub_MessageOrdering(t *testing.T) {
	hub := startHub(t)

	client := NewClient("ordered", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	const numMessages = 20
	for i := 0; i < numMessages; i++ {
		hub.Broadcast(Message{Type: "run.progress", Data: i})
	}
	for i := 0; i < numMessages; i++ {
		select {
		case msg := <-client.send:
			assert.Equal(t, i, msg.Data)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for message %d", i)
		}
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)

	client := &Client{id: "slow", hub: hub, send: make(chan Message, 1)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		hub.Broadcast(Message{Type: "run.results", Data: i})
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_Shutdown(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := NewClient("a", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.send
	assert.False(t, open)
}

func TestClient_Pumps(t *testing.T) {
	hub := startHub(t)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("pump", hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(Message{Type: "run.completed", Data: map[string]any{"runId": "r1"}})

	var got Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "run.completed", got.Type)
	assert.Equal(t, map[string]any{"runId": "r1"}, got.Data)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
