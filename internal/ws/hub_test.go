package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	logger.Discard()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(ctx)
	go hub.Run()
	return hub
}

func TestHub_BroadcastReachesOnlyOwner(t *testing.T) {
	hub := startHub(t)
	owner, stranger := uuid.New(), uuid.New()

	mine := &Client{hub: hub, userID: owner, send: make(chan []byte, 1)}
	other := &Client{hub: hub, userID: stranger, send: make(chan []byte, 1)}
	hub.Register(mine)
	hub.Register(other)

	require.NoError(t, hub.BroadcastToUser(owner, "message.created", map[string]string{"id": "42"}))

	select {
	case raw := <-mine.send:
		var got struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "message.created", got.Type)
		assert.Equal(t, "42", got.Data["id"])
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено")
	}

	select {
	case <-other.send:
		t.Fatal("событие ушло чужому клиенту")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()

	c := &Client{hub: hub, userID: userID, send: make(chan []byte, 1)}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)

	// повторный Unregister не паникует на закрытом канале
	hub.Unregister(c)
}

func TestHub_BroadcastDropsWhenQueueFull(t *testing.T) {
	logger.Discard()
	// хаб без Run: очередь никто не читает
	hub := NewHub(context.Background())
	for i := 0; i < cap(hub.broadcast); i++ {
		require.NoError(t, hub.BroadcastToUser(uuid.New(), "ping", nil))
	}
	assert.ErrorIs(t, hub.BroadcastToUser(uuid.New(), "ping", nil), ErrHubBusy)
}

func TestClient_ReceivesEventsOverWebSocket(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(conn, hub, userID)
		hub.Register(client)
		client.Run(r.Context())
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.BroadcastToUser(userID, "message.deleted", map[string]string{"id": "7"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message.deleted","data":{"id":"7"}}`, string(raw))

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == 0 }, 2*time.Second, 10*time.Millisecond)
}
