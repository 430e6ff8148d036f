package models

import "time"

// ScheduledReminder is a durable job row: fire an event_reminder notification
// for (EventID, UserID) at FireAt. Kept in the database rather than an
// in-process timer so pending reminders survive restarts.
type ScheduledReminder struct {
	EventID string
	UserID  string
	FireAt  time.Time
	Sent    bool
}
