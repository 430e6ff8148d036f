package service

import (
	"fmt"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
	"github.com/aaauuugggghhhh/unihub-event-management/types"
)

// NotificationsStore is the slice of the notifications repository the emitter
// writes through.
type NotificationsStore interface {
	Create(userID, title, message, notifType string) (*models.Notification, error)
}

// Emitter writes notification rows as side effects of registration and event
// changes, and is the interface the coordinator depends on.
type Emitter interface {
	Emit(userID, title, message, notifType string) (*models.Notification, error)
	EmitRegistrationConfirmation(userID string, e *models.Event) error
	EmitEventUpdate(userID string, e *models.Event) error
	EmitEventReminder(userID string, e *models.Event) error
}

// NotificationEmitter persists a notification and pushes the insert to the
// user's live feed. The push is best effort: a user with no open connection
// simply picks the row up on the next bulk load.
type NotificationEmitter struct {
	store    NotificationsStore
	notifier notify.Notifier
}

func NewNotificationEmitter(store NotificationsStore, notifier notify.Notifier) *NotificationEmitter {
	return &NotificationEmitter{store: store, notifier: notifier}
}

func (e *NotificationEmitter) Emit(userID, title, message, notifType string) (*models.Notification, error) {
	n, err := e.store.Create(userID, title, message, notifType)
	if err != nil {
		return nil, err
	}
	if e.notifier != nil {
		e.notifier.NotifyUser(userID, notify.InsertEvent(n))
	}
	return n, nil
}

func (e *NotificationEmitter) EmitRegistrationConfirmation(userID string, ev *models.Event) error {
	_, err := e.Emit(userID,
		"Event Registration Confirmed",
		fmt.Sprintf("You have successfully registered for %q on %s at %s.", ev.Title, ev.Date, ev.StartTime),
		types.NotificationRegistration)
	return err
}

func (e *NotificationEmitter) EmitEventUpdate(userID string, ev *models.Event) error {
	_, err := e.Emit(userID,
		"Event Update",
		fmt.Sprintf("The event %q has been updated. Please check the event details.", ev.Title),
		types.NotificationEventUpdate)
	return err
}

func (e *NotificationEmitter) EmitEventReminder(userID string, ev *models.Event) error {
	_, err := e.Emit(userID,
		"Event Reminder",
		fmt.Sprintf("Reminder: %q is starting soon on %s at %s.", ev.Title, ev.Date, ev.StartTime),
		types.NotificationEventReminder)
	return err
}
