package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/domain"
)

const (
	eventBuffer = 32
	writeWait   = 10 * time.Second
	pingPeriod  = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type event struct {
	Type         string               `json:"type"`
	Post         *domain.Post         `json:"post,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
	Transition   *connect.Transition  `json:"transition,omitempty"`
}

// stream pushes new posts, alerts and workflow transitions to a websocket client.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade websocket", "error", err)
		return
	}
	defer conn.Close()

	events := make(chan event, eventBuffer)
	push := func(e event) {
		select {
		case events <- e:
		default:
			h.logger.Warn("Stream client too slow, dropping event", "type", e.Type)
		}
	}

	unsubFeed := h.feed.Subscribe(func(p domain.Post) {
		push(event{Type: "post", Post: &p})
	})
	defer unsubFeed()
	unsubAlerts := h.alerts.Subscribe(func(n domain.Notification) {
		push(event{Type: "notification", Notification: &n})
	})
	defer unsubAlerts()
	unsubConnect := h.connect.OnTransition(func(t connect.Transition) {
		push(event{Type: "connect", Transition: &t})
	})
	defer unsubConnect()

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Warn("Stream read failed", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case e := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Warn("Stream write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-quit:
			return
		case <-r.Context().Done():
			return
		}
	}
}
