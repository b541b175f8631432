// Package notify re-fetches upcoming alerts on a fixed interval and pushes
// them to connected browsers, replacing a page-level refresh timer.
package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/views"
	"github.com/veltmach/procboard/internal/websocket"
)

const pollInterval = 60 * time.Second

// Message is one push frame sent to a browser
type Message struct {
	Type  string                   `json:"type"` // "notifications" or "session_expired"
	Panel *views.NotificationPanel `json:"panel,omitempty"`
}

// Poller periodically fetches notifications for every connected client
type Poller struct {
	hub      *websocket.Hub
	api      *upstream.Client
	store    *session.Store
	interval time.Duration
}

// NewPoller creates a notification poller
func NewPoller(hub *websocket.Hub, api *upstream.Client, store *session.Store) *Poller {
	return &Poller{
		hub:      hub,
		api:      api,
		store:    store,
		interval: pollInterval,
	}
}

// Start runs the poll loop until ctx is cancelled
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// pollOnce refreshes every connected client that still holds a credential
func (p *Poller) pollOnce(ctx context.Context) {
	for _, client := range p.hub.Clients() {
		// The credential may have been cleared by a 401 elsewhere.
		token, ok := p.store.Get(ctx, client.SID)
		if !ok {
			client.SendJSON(Message{Type: "session_expired"})
			client.Close()
			continue
		}

		notifications, err := p.api.GetNotifications(ctx, token)
		if err != nil {
			if errors.Is(err, upstream.ErrUnauthorized) {
				p.store.Clear(ctx, client.SID)
				client.SendJSON(Message{Type: "session_expired"})
				client.Close()
				continue
			}
			log.Printf("Notification poll failed for session %s: %v", client.SID, err)
			continue
		}

		panel := views.BuildNotificationPanel(notifications)
		client.SendJSON(Message{Type: "notifications", Panel: &panel})
	}
}
