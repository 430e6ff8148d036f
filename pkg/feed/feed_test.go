package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
)

func notif(id, userID string, read bool, createdAt time.Time) models.Notification {
	return models.Notification{
		ID:        id,
		UserID:    userID,
		Title:     "t",
		Message:   "m",
		Type:      "system",
		IsRead:    read,
		CreatedAt: createdAt,
	}
}

func TestSessionSeedsFromInitialLoad(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	initial := []models.Notification{
		notif("n3", "u1", false, base.Add(2*time.Minute)),
		notif("n2", "u1", true, base.Add(time.Minute)),
		notif("n1", "u1", false, base),
	}

	s := NewSession("u1", initial)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.UnreadCount())
}

func TestApplyInsertPrepends(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", []models.Notification{notif("n1", "u1", false, base)})

	n2 := notif("n2", "u1", false, base.Add(time.Minute))
	s.Apply(notify.InsertEvent(&n2))

	list := s.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)
	assert.Equal(t, "n1", list[1].ID)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestApplyInsertDeduplicatesOverlapWithBulkLoad(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	// n2 arrived both in the bulk load and on the stream.
	s := NewSession("u1", []models.Notification{
		notif("n2", "u1", false, base.Add(time.Minute)),
		notif("n1", "u1", false, base),
	})

	n2 := notif("n2", "u1", false, base.Add(time.Minute))
	s.Apply(notify.InsertEvent(&n2))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "n2", s.Notifications()[0].ID)
}

func TestApplyIgnoresOtherUsers(t *testing.T) {
	s := NewSession("u1", nil)

	other := notif("n9", "u2", false, time.Now())
	s.Apply(notify.InsertEvent(&other))

	assert.Equal(t, 0, s.Len())
}

func TestApplyUpdateMarkRead(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", []models.Notification{
		notif("n2", "u1", false, base.Add(time.Minute)),
		notif("n1", "u1", false, base),
	})
	require.Equal(t, 2, s.UnreadCount())

	read := notif("n1", "u1", true, base)
	s.Apply(notify.UpdateEvent(&read))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.UnreadCount())
}

func TestApplyUpdateForUnknownIDIsNoop(t *testing.T) {
	s := NewSession("u1", nil)

	ghost := notif("nope", "u1", true, time.Now())
	s.Apply(notify.UpdateEvent(&ghost))

	assert.Equal(t, 0, s.Len())
}

func TestApplyDeleteRemoves(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", []models.Notification{
		notif("n2", "u1", false, base.Add(time.Minute)),
		notif("n1", "u1", false, base),
	})

	s.Apply(notify.DeleteEvent("n2"))

	list := s.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, "n1", list[0].ID)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestMarkAllReadDropsUnreadToZero(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", []models.Notification{
		notif("n2", "u1", false, base.Add(time.Minute)),
		notif("n1", "u1", false, base),
	})

	// Mark-all-read arrives on the stream as one update per row.
	for _, n := range s.Notifications() {
		n.IsRead = true
		s.Apply(notify.UpdateEvent(&n))
	}

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestNotificationsReturnsCopy(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", []models.Notification{notif("n1", "u1", false, base)})

	list := s.Notifications()
	list[0].IsRead = true

	assert.Equal(t, 1, s.UnreadCount())
}
