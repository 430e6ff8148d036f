package types

import "errors"

// Domain errors
var (
	// Event errors
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidCategory = errors.New("invalid event category")
	ErrInvalidTimes    = errors.New("startTime must be before endTime")
	ErrInvalidCapacity = errors.New("capacity must be zero or positive")
	ErrMissingFields   = errors.New("title, date, startTime, endTime and location are required")

	// Registration errors
	ErrEventFull            = errors.New("registration closed: event is at full capacity")
	ErrEventStarted         = errors.New("registration closed: event has already started")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already registered")
)

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation reports whether err is caused by malformed or missing input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidTimes) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrMissingFields)
}

// IsRegistrationClosed reports whether err means the event can no longer accept
// registrations, either because it is full or because it has started.
func IsRegistrationClosed(err error) bool {
	return errors.Is(err, ErrEventFull) || errors.Is(err, ErrEventStarted)
}

// IsConflict reports whether err should map to an HTTP 409.
func IsConflict(err error) bool {
	return IsRegistrationClosed(err) ||
		errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrEmailTaken)
}
