package service

import (
	"log/slog"
	"time"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/types"
)

// reminderLead is how long before an event's start the reminder fires.
const reminderLead = 24 * time.Hour

// EventsStore is the slice of the events repository the coordinator needs.
type EventsStore interface {
	GetEventByID(id string) (*models.Event, error)
	CreateEvent(in repository.EventInput) (*models.Event, error)
	UpdateEvent(id string, in repository.EventInput) (*models.Event, error)
	DeleteEvent(id string) (bool, error)
}

// RegistrationsStore is the ledger of (event, user) pairs. Register and
// Unregister are transactional with the cached counter.
type RegistrationsStore interface {
	Register(eventID, userID string) error
	Unregister(eventID, userID string) error
	GetUserIDsForEvent(eventID string) ([]string, error)
}

// RemindersStore schedules durable reminder jobs.
type RemindersStore interface {
	Schedule(eventID, userID string, fireAt time.Time) error
}

// Coordinator gates writes to the registration ledger behind the business
// rules (existence, timing, capacity) and triggers the derived notification
// side effects.
type Coordinator struct {
	events        EventsStore
	registrations RegistrationsStore
	reminders     RemindersStore
	emitter       Emitter
	loc           *time.Location
	now           func() time.Time
}

func NewCoordinator(events EventsStore, registrations RegistrationsStore, reminders RemindersStore, emitter Emitter) *Coordinator {
	return &Coordinator{
		events:        events,
		registrations: registrations,
		reminders:     reminders,
		emitter:       emitter,
		loc:           time.Local,
		now:           time.Now,
	}
}

// WithClock overrides the coordinator's clock and location, used by tests.
func (c *Coordinator) WithClock(now func() time.Time, loc *time.Location) *Coordinator {
	c.now = now
	c.loc = loc
	return c
}

// Register validates the business rules, writes the ledger row, emits the
// confirmation notification, and schedules the 24h reminder when it still
// lies in the future.
//
// The capacity pre-check here is a fast path only. The registrations store
// serializes the authoritative check-and-increment, so two users racing for
// the last slot can both pass the pre-check but only one commits.
func (c *Coordinator) Register(eventID, userID string) error {
	e, err := c.events.GetEventByID(eventID)
	if err != nil {
		return err
	}
	if e == nil {
		return types.ErrEventNotFound
	}

	start, err := e.StartInstant(c.loc)
	if err != nil {
		return err
	}
	now := c.now()
	if !now.Before(start) {
		return types.ErrEventStarted
	}
	if e.IsFull() {
		return types.ErrEventFull
	}

	if err := c.registrations.Register(eventID, userID); err != nil {
		return err
	}

	// The registration is committed from here on. Notification side effects
	// are best effort and never undo it.
	if err := c.emitter.EmitRegistrationConfirmation(userID, e); err != nil {
		slog.Error("failed to emit registration confirmation",
			"eventId", eventID, "userId", userID, "err", err)
	}

	fireAt := start.Add(-reminderLead)
	if fireAt.After(now) {
		if err := c.reminders.Schedule(eventID, userID, fireAt); err != nil {
			slog.Error("failed to schedule event reminder",
				"eventId", eventID, "userId", userID, "fireAt", fireAt, "err", err)
		}
	}

	return nil
}

// Unregister removes the ledger row. A missing registration is an error, not
// a silent no-op; the store also drops any pending reminder for the pair.
func (c *Coordinator) Unregister(eventID, userID string) error {
	return c.registrations.Unregister(eventID, userID)
}

// CreateEvent validates the input and writes a new event with a zero counter.
func (c *Coordinator) CreateEvent(in repository.EventInput) (*models.Event, error) {
	if err := ValidateEventInput(in); err != nil {
		return nil, err
	}
	return c.events.CreateEvent(in)
}

// UpdateEvent rewrites the event's mutable fields and fans out one
// event_update notification per registrant. Each emit is independent; a
// failed write is logged and skipped, and never rolls back the already
// committed event update.
func (c *Coordinator) UpdateEvent(eventID string, in repository.EventInput) (*models.Event, error) {
	if err := ValidateEventInput(in); err != nil {
		return nil, err
	}
	updated, err := c.events.UpdateEvent(eventID, in)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, types.ErrEventNotFound
	}

	ids, err := c.registrations.GetUserIDsForEvent(eventID)
	if err != nil {
		slog.Error("failed to list registrants for update fan-out", "eventId", eventID, "err", err)
		return updated, nil
	}
	failed := 0
	for _, userID := range ids {
		if err := c.emitter.EmitEventUpdate(userID, updated); err != nil {
			failed++
			slog.Error("failed to emit event update notification",
				"eventId", eventID, "userId", userID, "err", err)
		}
	}
	if failed > 0 {
		slog.Warn("event update fan-out completed with failures",
			"eventId", eventID, "registrants", len(ids), "failed", failed)
	}
	return updated, nil
}

// DeleteEvent removes the event; registrations and pending reminders go with
// it via the schema's cascade rules.
func (c *Coordinator) DeleteEvent(eventID string) error {
	ok, err := c.events.DeleteEvent(eventID)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrEventNotFound
	}
	return nil
}

// ValidateEventInput enforces the required fields and time ordering of an
// event before it reaches the store.
func ValidateEventInput(in repository.EventInput) error {
	if in.Title == "" || in.Date == "" || in.StartTime == "" || in.EndTime == "" || in.Location == "" {
		return types.ErrMissingFields
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return types.ErrMissingFields
	}
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return types.ErrMissingFields
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return types.ErrMissingFields
	}
	if !start.Before(end) {
		return types.ErrInvalidTimes
	}
	if !types.IsValidCategory(in.Category) {
		return types.ErrInvalidCategory
	}
	if in.Capacity < 0 {
		return types.ErrInvalidCapacity
	}
	return nil
}
