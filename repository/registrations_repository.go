package repository

import (
	"database/sql"
	"strings"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/types"
	"github.com/lib/pq"
)

type RegistrationsRepository struct {
	db *sql.DB
}

func NewRegistrationsRepository(db *sql.DB) *RegistrationsRepository {
	return &RegistrationsRepository{db: db}
}

// Register inserts the registration row and bumps the cached counter in one
// transaction. The conditional UPDATE is the authoritative capacity guard: if
// another registration took the last slot since the caller's pre-check, zero
// rows match and the whole transaction rolls back. The database trigger on
// event_registrations is a second line of defense behind this.
func (r *RegistrationsRepository) Register(eventID, userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO event_registrations (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		return translateRegistrationError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrAlreadyRegistered
	}

	res, err = tx.Exec(`
		UPDATE events
		SET registered_count = registered_count + 1, modified_at = NOW()
		WHERE id = $1 AND (capacity = 0 OR registered_count < capacity)
	`, eventID)
	if err != nil {
		return err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrEventFull
	}

	return tx.Commit()
}

// Unregister removes the registration and decrements the counter, floored at
// zero, in one transaction. A pending unsent reminder for the pair is dropped
// as well.
func (r *RegistrationsRepository) Unregister(eventID, userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrRegistrationNotFound
	}

	_, err = tx.Exec(`
		UPDATE events
		SET registered_count = GREATEST(registered_count - 1, 0), modified_at = NOW()
		WHERE id = $1
	`, eventID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		DELETE FROM scheduled_reminders
		WHERE event_id = $1 AND user_id = $2 AND sent = FALSE
	`, eventID, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *RegistrationsRepository) Exists(eventID, userID string) (bool, error) {
	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2
	`, eventID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUserIDsForEvent returns the ids of every user registered for the event,
// used by the event_update notification fan-out.
func (r *RegistrationsRepository) GetUserIDsForEvent(eventID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT user_id FROM event_registrations WHERE event_id = $1 ORDER BY created_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetRegistrantsForEvent resolves each registration to the attendee's email
// and display name for the administrator roster view.
func (r *RegistrationsRepository) GetRegistrantsForEvent(eventID string) ([]models.Registrant, error) {
	rows, err := r.db.Query(`
		SELECT er.event_id, er.user_id, u.email, u.display_name, er.created_at
		FROM event_registrations er
		INNER JOIN users u ON u.id = er.user_id
		WHERE er.event_id = $1
		ORDER BY er.created_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Registrant
	for rows.Next() {
		var reg models.Registrant
		if err := rows.Scan(&reg.EventID, &reg.UserID, &reg.Email, &reg.DisplayName, &reg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}

// GetEventsForUser returns the events the user is registered for, ordered by date.
func (r *RegistrationsRepository) GetEventsForUser(userID string) ([]models.Event, error) {
	rows, err := r.db.Query(`
		SELECT `+eventColumns+`
		FROM events
		WHERE id IN (SELECT event_id FROM event_registrations WHERE user_id = $1)
		ORDER BY date ASC, start_time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// translateRegistrationError maps the guard trigger's raised exceptions back
// to domain errors so a bypassed pre-check still surfaces the right cause.
func translateRegistrationError(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return err
	}
	msg := pqErr.Message
	switch {
	case strings.Contains(msg, "full capacity"):
		return types.ErrEventFull
	case strings.Contains(msg, "already started"):
		return types.ErrEventStarted
	}
	return err
}
