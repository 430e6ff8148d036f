package models

import (
	"time"
)

// Event is a campus event students can register for.
//
// Date is the calendar date (YYYY-MM-DD) and StartTime/EndTime are times of day
// (HH:MM); the start instant used for registration cutoffs is derived from the
// two, never stored. Capacity 0 means unlimited attendance; RegisteredCount is
// a cached counter maintained transactionally with the registrations table.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	Organizer       string    `json:"organizer"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registeredCount"`
	CreatedAt       time.Time `json:"createdAt"`
	ModifiedAt      time.Time `json:"modifiedAt"`
}

// eventTimeLayout parses the combined date and start time of an event.
const eventTimeLayout = "2006-01-02 15:04"

// StartInstant returns the moment the event begins in the given location.
func (e *Event) StartInstant(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(eventTimeLayout, e.Date+" "+e.StartTime, loc)
}

// Unlimited reports whether the event has no attendance cap.
func (e *Event) Unlimited() bool {
	return e.Capacity == 0
}

// IsFull reports whether the cached counter has reached capacity.
// Advisory only: the authoritative guard is the conditional update in the
// registrations repository plus the database trigger.
func (e *Event) IsFull() bool {
	return !e.Unlimited() && e.RegisteredCount >= e.Capacity
}
