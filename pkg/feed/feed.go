package feed

import (
	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
)

// Session is the per-subscription state of one user's notification feed: the
// in-memory list seeded by the initial bulk load, kept newest-first, with
// change events applied strictly in arrival order. A session is owned by a
// single connection goroutine; it is constructed on subscribe and discarded on
// unsubscribe, never shared.
type Session struct {
	userID        string
	notifications []models.Notification
}

// NewSession seeds a session from the initial load, which must already be
// ordered by createdAt descending.
func NewSession(userID string, initial []models.Notification) *Session {
	s := &Session{userID: userID}
	s.notifications = append(s.notifications, initial...)
	return s
}

// Apply folds one change event into the list. Events for other users are
// ignored. An insert for an id already present (a row caught by both the bulk
// load and the stream) replaces the stale copy instead of duplicating it.
func (s *Session) Apply(ev notify.ChangeEvent) {
	switch ev.Action {
	case notify.ActionInsert:
		if ev.Notification == nil || ev.Notification.UserID != s.userID {
			return
		}
		s.remove(ev.ID)
		s.notifications = append([]models.Notification{*ev.Notification}, s.notifications...)
	case notify.ActionUpdate:
		if ev.Notification == nil || ev.Notification.UserID != s.userID {
			return
		}
		for i := range s.notifications {
			if s.notifications[i].ID == ev.ID {
				s.notifications[i] = *ev.Notification
				return
			}
		}
	case notify.ActionDelete:
		s.remove(ev.ID)
	}
}

func (s *Session) remove(id string) {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// UnreadCount is derived from the current list, never cached.
func (s *Session) UnreadCount() int {
	count := 0
	for i := range s.notifications {
		if !s.notifications[i].IsRead {
			count++
		}
	}
	return count
}

// Notifications returns a copy of the current list, newest first.
func (s *Session) Notifications() []models.Notification {
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Len returns the number of notifications currently in the session.
func (s *Session) Len() int {
	return len(s.notifications)
}
