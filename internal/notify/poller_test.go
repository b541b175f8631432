package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/websocket"
)

// pollerFixture wires a poller to a fake upstream, a real hub and a real
// websocket endpoint, so pushes travel the same path browsers use.
type pollerFixture struct {
	t      *testing.T
	hub    *websocket.Hub
	store  *session.Store
	poller *Poller
	ws     *httptest.Server
}

func newPollerFixture(t *testing.T, upstreamHandler http.HandlerFunc, sid string) *pollerFixture {
	mr := miniredis.RunT(t)
	store := session.NewStore(mr.Addr(), time.Hour)

	up := httptest.NewServer(upstreamHandler)
	t.Cleanup(up.Close)
	api := upstream.NewClient(up.URL, 5*time.Second)

	hub := websocket.NewHub()
	go hub.Run()

	ws := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(hub, w, r, sid)
	}))
	t.Cleanup(ws.Close)

	return &pollerFixture{
		t:      t,
		hub:    hub,
		store:  store,
		poller: NewPoller(hub, api, store),
		ws:     ws,
	}
}

// dial connects a browser-side websocket and waits for the hub to register it
func (f *pollerFixture) dial() *gws.Conn {
	url := "ws" + strings.TrimPrefix(f.ws.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(f.t, err)
	f.t.Cleanup(func() { conn.Close() })

	require.Eventually(f.t, func() bool { return len(f.hub.Clients()) == 1 },
		time.Second, 5*time.Millisecond)
	return conn
}

func (f *pollerFixture) clientCount() func() bool {
	return func() bool { return len(f.hub.Clients()) == 0 }
}

func readMessage(t *testing.T, conn *gws.Conn) Message {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestPollPushesNotificationPanel(t *testing.T) {
	var gotAuth string
	f := newPollerFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		expiry := "2026-09-30"
		json.NewEncoder(w).Encode([]upstream.Notification{
			{ID: 4, ClientID: "ACME", ContractExpiration: &expiry},
		})
	}, "sid-1")
	require.NoError(t, f.store.Put(context.Background(), "sid-1", "tok-1"))
	conn := f.dial()

	f.poller.pollOnce(context.Background())

	msg := readMessage(t, conn)
	assert.Equal(t, "notifications", msg.Type)
	require.NotNil(t, msg.Panel)
	require.Len(t, msg.Panel.Items, 1)
	assert.Equal(t, "ACME", msg.Panel.Items[0].ClientID)
	assert.Equal(t, "Expiring: 2026-09-30", msg.Panel.Items[0].Detail)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestPollDropsSessionWithoutCredential(t *testing.T) {
	f := newPollerFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream called for a session without a credential")
	}, "sid-1")
	conn := f.dial()

	f.poller.pollOnce(context.Background())

	msg := readMessage(t, conn)
	assert.Equal(t, "session_expired", msg.Type)
	assert.Nil(t, msg.Panel)
	require.Eventually(t, f.clientCount(), time.Second, 5*time.Millisecond)
}

func TestPollExpiresSessionOnUpstream401(t *testing.T) {
	ctx := context.Background()
	f := newPollerFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "sid-1")
	require.NoError(t, f.store.Put(ctx, "sid-1", "stale-tok"))
	conn := f.dial()

	f.poller.pollOnce(ctx)

	msg := readMessage(t, conn)
	assert.Equal(t, "session_expired", msg.Type)

	_, ok := f.store.Get(ctx, "sid-1")
	assert.False(t, ok)
	require.Eventually(t, f.clientCount(), time.Second, 5*time.Millisecond)
}

func TestPollSurvivesDisconnectDuringFetch(t *testing.T) {
	// The poller snapshots the hub before the upstream round-trip. A browser
	// dropping inside that window must not take the process down.
	var f *pollerFixture
	var conn *gws.Conn
	f = newPollerFixture(t, func(w http.ResponseWriter, r *http.Request) {
		conn.Close()
		for i := 0; i < 200 && len(f.hub.Clients()) > 0; i++ {
			time.Sleep(5 * time.Millisecond)
		}
		json.NewEncoder(w).Encode([]upstream.Notification{})
	}, "sid-1")
	require.NoError(t, f.store.Put(context.Background(), "sid-1", "tok-1"))
	conn = f.dial()

	f.poller.pollOnce(context.Background())

	assert.Empty(t, f.hub.Clients())
}
