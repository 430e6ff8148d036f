package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/feed"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	ws "github.com/aaauuugggghhhh/unihub-event-management/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// feedFrame is one message written to a feed subscriber. The first frame is
// always the snapshot; every later frame carries a single change applied to
// the session, with the unread count derived after it.
type feedFrame struct {
	Type          string                `json:"type"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	Change        *notify.ChangeEvent   `json:"change,omitempty"`
	UnreadCount   int                   `json:"unreadCount"`
}

// ServeFeed upgrades the connection and streams the caller's notification
// feed: an initial bulk load, then change events in arrival order. The feed
// session is constructed here on subscribe and torn down on disconnect; no
// feed state outlives the connection.
// Caller must authenticate and set userId in context.
func ServeFeed(hub *ws.Hub, notificationsRepo *repository.NotificationsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userId")
		if userID == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}
		client := ws.NewClient(userID)
		hub.Register(client)

		// Register first, load second: a row written in between shows up in
		// both the snapshot and the stream, and the session deduplicates it.
		initial, err := notificationsRepo.ListForUser(userID)
		if err != nil {
			slog.Error("failed to load notifications for feed", "userId", userID, "err", err)
			hub.Unregister(client)
			_ = conn.Close()
			return
		}
		session := feed.NewSession(userID, initial)

		if err := writeFrame(conn, feedFrame{
			Type:          "snapshot",
			Notifications: session.Notifications(),
			UnreadCount:   session.UnreadCount(),
		}); err != nil {
			hub.Unregister(client)
			_ = conn.Close()
			return
		}

		// Reader goroutine: drains client frames and keeps the connection
		// alive. Unregistering on exit closes the client's queue, which in
		// turn ends the writer loop below.
		go func() {
			defer func() {
				hub.Unregister(client)
				_ = conn.Close()
			}()
			conn.SetReadLimit(1024)
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// Writer loop: apply each change to the session in arrival order,
		// then forward it with the recomputed unread count.
		for payload := range client.Receive() {
			var change notify.ChangeEvent
			if err := json.Unmarshal(payload, &change); err != nil {
				slog.Error("malformed change event on feed", "userId", userID, "err", err)
				continue
			}
			session.Apply(change)
			if err := writeFrame(conn, feedFrame{
				Type:        "change",
				Change:      &change,
				UnreadCount: session.UnreadCount(),
			}); err != nil {
				break
			}
		}
		_ = conn.Close()
	}
}

func writeFrame(conn *websocket.Conn, frame feedFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, payload)
}
