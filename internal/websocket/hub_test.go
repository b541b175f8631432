package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, id, sid string) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, 16),
		ID:   id,
		SID:  sid,
	}
}

func registered(h *Hub, n int) func() bool {
	return func() bool { return len(h.Clients()) == n }
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := newTestClient(h, "conn-a", "sid-1")
	b := newTestClient(h, "conn-b", "sid-2")
	h.register <- a
	h.register <- b
	require.Eventually(t, registered(h, 2), time.Second, 5*time.Millisecond)

	a.Close()
	require.Eventually(t, registered(h, 1), time.Second, 5*time.Millisecond)
	assert.Equal(t, "sid-2", h.Clients()[0].SID)
}

func TestSendJSONAfterUnregisterDoesNotPanic(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(h, "conn-a", "sid-1")
	h.register <- c
	require.Eventually(t, registered(h, 1), time.Second, 5*time.Millisecond)

	// A pusher working from a stale snapshot must survive the client
	// disconnecting underneath it.
	snapshot := h.Clients()
	require.Len(t, snapshot, 1)

	c.Close()
	require.Eventually(t, registered(h, 0), time.Second, 5*time.Millisecond)

	assert.False(t, snapshot[0].SendJSON(map[string]string{"type": "notifications"}))
}

func TestCloseIsIdempotent(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(h, "conn-a", "sid-1")
	h.register <- c
	require.Eventually(t, registered(h, 1), time.Second, 5*time.Millisecond)

	c.Close()
	c.Close()
	require.Eventually(t, registered(h, 0), time.Second, 5*time.Millisecond)
	assert.False(t, c.SendJSON("late"))
}

func TestSendJSONDeliversWhileRegistered(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(h, "conn-a", "sid-1")
	h.register <- c
	require.Eventually(t, registered(h, 1), time.Second, 5*time.Millisecond)

	require.True(t, c.SendJSON(map[string]string{"type": "notifications"}))
	select {
	case msg := <-c.send:
		assert.Contains(t, string(msg), "notifications")
	default:
		t.Fatal("expected a buffered message")
	}
}
