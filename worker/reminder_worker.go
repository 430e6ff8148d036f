package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/service"
)

// RemindersStore is the durable reminder queue the worker drains.
type RemindersStore interface {
	ClaimDue(now time.Time, limit int) ([]models.ScheduledReminder, error)
	Reschedule(eventID, userID string) error
}

// EventsStore resolves the event a reminder refers to.
type EventsStore interface {
	GetEventByID(id string) (*models.Event, error)
}

// RegistrationsStore checks the registration still exists before reminding.
type RegistrationsStore interface {
	Exists(eventID, userID string) (bool, error)
}

// ReminderWorkerConfig holds configuration for the reminder worker.
type ReminderWorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// ReminderWorker periodically claims due scheduled reminders and emits
// event_reminder notifications for them. Delivery is at-least-once: a claim
// whose emit fails is put back and retried on a later tick.
type ReminderWorker struct {
	config        ReminderWorkerConfig
	reminders     RemindersStore
	events        EventsStore
	registrations RegistrationsStore
	emitter       service.Emitter
	now           func() time.Time
}

func NewReminderWorker(cfg ReminderWorkerConfig, reminders RemindersStore, events EventsStore, registrations RegistrationsStore, emitter service.Emitter) *ReminderWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &ReminderWorker{
		config:        cfg,
		reminders:     reminders,
		events:        events,
		registrations: registrations,
		emitter:       emitter,
		now:           time.Now,
	}
}

// WithClock overrides the worker's clock, used by tests.
func (w *ReminderWorker) WithClock(now func() time.Time) *ReminderWorker {
	w.now = now
	return w
}

// Start runs the polling loop until the context is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	slog.Info("reminder worker started", "interval", w.config.PollInterval, "batchSize", w.config.BatchSize)
	for {
		select {
		case <-ctx.Done():
			slog.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Tick claims one batch of due reminders and delivers them.
func (w *ReminderWorker) Tick() {
	due, err := w.reminders.ClaimDue(w.now(), w.config.BatchSize)
	if err != nil {
		slog.Error("failed to claim due reminders", "err", err)
		return
	}
	for _, rem := range due {
		w.deliver(rem)
	}
}

func (w *ReminderWorker) deliver(rem models.ScheduledReminder) {
	event, err := w.events.GetEventByID(rem.EventID)
	if err != nil {
		slog.Error("failed to load event for reminder", "eventId", rem.EventID, "err", err)
		if err := w.reminders.Reschedule(rem.EventID, rem.UserID); err != nil {
			slog.Error("failed to reschedule reminder", "eventId", rem.EventID, "userId", rem.UserID, "err", err)
		}
		return
	}
	if event == nil {
		// Event deleted since scheduling; nothing to remind about.
		return
	}

	registered, err := w.registrations.Exists(rem.EventID, rem.UserID)
	if err != nil {
		slog.Error("failed to check registration for reminder", "eventId", rem.EventID, "userId", rem.UserID, "err", err)
		if err := w.reminders.Reschedule(rem.EventID, rem.UserID); err != nil {
			slog.Error("failed to reschedule reminder", "eventId", rem.EventID, "userId", rem.UserID, "err", err)
		}
		return
	}
	if !registered {
		// The user unregistered after the reminder was claimed.
		return
	}

	if err := w.emitter.EmitEventReminder(rem.UserID, event); err != nil {
		slog.Error("failed to emit event reminder", "eventId", rem.EventID, "userId", rem.UserID, "err", err)
		if err := w.reminders.Reschedule(rem.EventID, rem.UserID); err != nil {
			slog.Error("failed to reschedule reminder", "eventId", rem.EventID, "userId", rem.UserID, "err", err)
		}
	}
}
