package repository

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/google/uuid"
)

type EventsRepository struct {
	db *sql.DB
}

func NewEventsRepository(db *sql.DB) *EventsRepository {
	return &EventsRepository{db: db}
}

// eventColumns is the shared select list; date and times are formatted in SQL
// so the model carries the same YYYY-MM-DD / HH:MM strings the API exposes.
const eventColumns = `
	id, title, description,
	to_char(date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'),
	location, category, organizer,
	COALESCE(image_url, ''),
	capacity, registered_count,
	created_at, modified_at
`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description,
		&e.Date, &e.StartTime, &e.EndTime,
		&e.Location, &e.Category, &e.Organizer,
		&e.ImageURL,
		&e.Capacity, &e.RegisteredCount,
		&e.CreatedAt, &e.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventsRepository) GetEventByID(id string) (*models.Event, error) {
	row := r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// EventFilter narrows GetEvents. Zero values mean "no restriction".
type EventFilter struct {
	Category string
	Search   string
}

// GetEvents returns events ordered by date ascending, optionally filtered by
// category and a case-insensitive title/location search, with the total count
// for pagination.
func (r *EventsRepository) GetEvents(filter EventFilter, offset, limit int) ([]models.Event, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if filter.Category != "" {
		where = append(where, "category = $"+strconv.Itoa(idx))
		args = append(args, filter.Category)
		idx++
	}
	if filter.Search != "" {
		where = append(where, "(title ILIKE $"+strconv.Itoa(idx)+" OR location ILIKE $"+strconv.Itoa(idx)+")")
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM events WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE `+cond+`
		 ORDER BY date ASC, start_time ASC
		 LIMIT $`+strconv.Itoa(idx)+` OFFSET $`+strconv.Itoa(idx+1), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *e)
	}
	return result, total, rows.Err()
}

// EventInput carries the mutable fields of an event.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Organizer   string `json:"organizer"`
	ImageURL    string `json:"imageUrl"`
	Capacity    int    `json:"capacity"`
}

func (r *EventsRepository) CreateEvent(in EventInput) (*models.Event, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO events (id, title, description, date, start_time, end_time,
		                    location, category, organizer, image_url, capacity,
		                    registered_count, created_at, modified_at)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, $8, $9, NULLIF($10, ''), $11, 0, NOW(), NOW())
	`, id, in.Title, in.Description, in.Date, in.StartTime, in.EndTime,
		in.Location, in.Category, in.Organizer, in.ImageURL, in.Capacity)
	if err != nil {
		return nil, err
	}
	return r.GetEventByID(id)
}

func (r *EventsRepository) UpdateEvent(id string, in EventInput) (*models.Event, error) {
	res, err := r.db.Exec(`
		UPDATE events
		SET title = $2, description = $3, date = $4::date, start_time = $5::time,
		    end_time = $6::time, location = $7, category = $8, organizer = $9,
		    image_url = NULLIF($10, ''), capacity = $11, modified_at = NOW()
		WHERE id = $1
	`, id, in.Title, in.Description, in.Date, in.StartTime, in.EndTime,
		in.Location, in.Category, in.Organizer, in.ImageURL, in.Capacity)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetEventByID(id)
}

func (r *EventsRepository) DeleteEvent(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetEventImageURL updates only the poster URL, used after an upload.
func (r *EventsRepository) SetEventImageURL(id, imageURL string) error {
	_, err := r.db.Exec(`
		UPDATE events SET image_url = NULLIF($2, ''), modified_at = NOW() WHERE id = $1
	`, id, imageURL)
	return err
}
