package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		NewClient(hub, conn)
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, have %d", want, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub, srv := startHub(t)

	first := dial(t, srv)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.Publish("slotsUpdated", map[string]string{"propertyId": "p-1"})

	for _, conn := range []*websocket.Conn{first, second} {
		env := readEnvelope(t, conn)
		assert.Equal(t, "slotsUpdated", env.Event)
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "p-1", data["propertyId"])
	}
}

func TestHubPreservesPublishOrder(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	hub.Publish("slotBooked", map[string]string{"slotId": "s-1"})
	hub.Publish("slotStatusChanged", map[string]string{"slotId": "s-1"})

	assert.Equal(t, "slotBooked", readEnvelope(t, conn).Event)
	assert.Equal(t, "slotStatusChanged", readEnvelope(t, conn).Event)
}

func TestHubDoesNotReplayToLateSubscribers(t *testing.T) {
	hub, srv := startHub(t)

	early := dial(t, srv)
	waitForClients(t, hub, 1)
	hub.Publish("slotsUpdated", map[string]string{"propertyId": "p-1"})
	assert.Equal(t, "slotsUpdated", readEnvelope(t, early).Event)

	late := dial(t, srv)
	waitForClients(t, hub, 2)

	late.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := late.ReadMessage()
	require.Error(t, err, "late subscriber must not receive earlier events")
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// Publishing with nobody connected is a no-op, not a panic.
	hub.Publish("slotsUpdated", map[string]string{"propertyId": "p-1"})
}
