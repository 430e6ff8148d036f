package types

// EventCategories lists the allowed event categories.
var EventCategories = []string{
	"academic",
	"social",
	"sports",
	"arts",
	"career",
	"workshop",
	"other",
}

// IsValidCategory reports whether name is a known event category.
func IsValidCategory(name string) bool {
	for _, c := range EventCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Notification types
const (
	NotificationEventReminder = "event_reminder"
	NotificationRegistration  = "registration_confirmation"
	NotificationEventUpdate   = "event_update"
	NotificationSystem        = "system"
)

// IsValidNotificationType reports whether name is a known notification type.
func IsValidNotificationType(name string) bool {
	switch name {
	case NotificationEventReminder, NotificationRegistration, NotificationEventUpdate, NotificationSystem:
		return true
	}
	return false
}
