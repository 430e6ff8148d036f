package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/websocket"
)

// Action discriminates notification change events on the live feed.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ChangeEvent is one row-level change to the notifications table, delivered to
// the owning user's live feed sessions in write order. Delete events carry only
// the id.
type ChangeEvent struct {
	Action       Action               `json:"action"`
	ID           string               `json:"id"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// Notifier defines a minimal interface for pushing notification change events
// to a user's connected clients.
type Notifier interface {
	NotifyUser(userID string, event ChangeEvent)
}

// WSNotifier implements Notifier using a WebSocket Hub.
type WSNotifier struct {
	Hub *websocket.Hub
}

// NotifyUser serializes the change event as JSON and delivers it to all
// connected clients of the user.
func (n *WSNotifier) NotifyUser(userID string, event ChangeEvent) {
	if n == nil || n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal change event", "err", err)
		return
	}
	n.Hub.NotifyUser(userID, payload)
}

// InsertEvent builds a ChangeEvent for a freshly written notification.
func InsertEvent(n *models.Notification) ChangeEvent {
	return ChangeEvent{Action: ActionInsert, ID: n.ID, Notification: n}
}

// UpdateEvent builds a ChangeEvent for a mutated notification.
func UpdateEvent(n *models.Notification) ChangeEvent {
	return ChangeEvent{Action: ActionUpdate, ID: n.ID, Notification: n}
}

// DeleteEvent builds a ChangeEvent for a removed notification.
func DeleteEvent(id string) ChangeEvent {
	return ChangeEvent{Action: ActionDelete, ID: id}
}
