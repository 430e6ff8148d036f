package models

import "time"

// Registration records that a user holds a spot at an event.
// The (EventID, UserID) pair is unique; a registration has no lifecycle
// beyond existing.
type Registration struct {
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Registrant is a registration joined with the attendee's identity,
// used by the administrator roster view.
type Registrant struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
