package repository

import (
	"database/sql"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/google/uuid"
)

type NotificationsRepository struct {
	db *sql.DB
}

func NewNotificationsRepository(db *sql.DB) *NotificationsRepository {
	return &NotificationsRepository{db: db}
}

func (r *NotificationsRepository) Create(userID, title, message, notifType string) (*models.Notification, error) {
	n := models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	err := r.db.QueryRow(`
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING is_read, created_at
	`, n.ID, n.UserID, n.Title, n.Message, n.Type).Scan(&n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListForUser returns all notifications of the user, newest first. This is the
// initial bulk load a feed session performs on subscribe.
func (r *NotificationsRepository) ListForUser(userID string) ([]models.Notification, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// MarkRead flips is_read for a single notification owned by the user and
// returns the updated row, or nil when no such row exists.
func (r *NotificationsRepository) MarkRead(id, userID string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(`
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, message, type, is_read, created_at
	`, id, userID).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllRead flips every unread notification of the user and returns the
// rows that changed so live feeds can be reconciled.
func (r *NotificationsRepository) MarkAllRead(userID string) ([]models.Notification, error) {
	rows, err := r.db.Query(`
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
		RETURNING id, user_id, title, message, type, is_read, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// Delete removes a notification owned by the user. Returns false when the row
// does not exist or belongs to someone else.
func (r *NotificationsRepository) Delete(id, userID string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM notifications WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
