package models

import "time"

// Notification is a per-user message created by the emitter as a side effect
// of registration, event updates, or reminders. Only the owning user may read,
// mark, or delete it.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
