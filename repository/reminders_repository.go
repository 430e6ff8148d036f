package repository

import (
	"database/sql"
	"time"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
)

type RemindersRepository struct {
	db *sql.DB
}

func NewRemindersRepository(db *sql.DB) *RemindersRepository {
	return &RemindersRepository{db: db}
}

// Schedule records a durable reminder for (eventID, userID) at fireAt.
// Re-registering after an unregister simply rewrites the row.
func (r *RemindersRepository) Schedule(eventID, userID string, fireAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO scheduled_reminders (event_id, user_id, fire_at, sent)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (event_id, user_id) DO UPDATE SET fire_at = EXCLUDED.fire_at, sent = FALSE
	`, eventID, userID, fireAt)
	return err
}

// ClaimDue returns up to limit reminders whose fire_at has passed and marks
// them sent in the same statement, so concurrent worker ticks never deliver a
// reminder twice. A reminder that later fails to emit is unmarked by the
// caller and retried on the next tick.
func (r *RemindersRepository) ClaimDue(now time.Time, limit int) ([]models.ScheduledReminder, error) {
	rows, err := r.db.Query(`
		UPDATE scheduled_reminders sr
		SET sent = TRUE
		FROM (
			SELECT event_id, user_id FROM scheduled_reminders
			WHERE sent = FALSE AND fire_at <= $1
			ORDER BY fire_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		) due
		WHERE sr.event_id = due.event_id AND sr.user_id = due.user_id
		RETURNING sr.event_id, sr.user_id, sr.fire_at, sr.sent
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ScheduledReminder
	for rows.Next() {
		var rem models.ScheduledReminder
		if err := rows.Scan(&rem.EventID, &rem.UserID, &rem.FireAt, &rem.Sent); err != nil {
			return nil, err
		}
		result = append(result, rem)
	}
	return result, rows.Err()
}

// Reschedule puts a claimed reminder back into the unsent pool after a failed
// delivery attempt.
func (r *RemindersRepository) Reschedule(eventID, userID string) error {
	_, err := r.db.Exec(`
		UPDATE scheduled_reminders SET sent = FALSE
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	return err
}
