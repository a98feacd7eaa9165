package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hearthside/internal/model"
)

// Accepted event date formats: ISO first, then day/month-name/2-digit-year.
var eventDateFormats = []string{"2006-01-02", "02/January/06"}

// ParseEventDate parses an event date under the accepted formats and
// returns it normalized to YYYY-MM-DD.
func ParseEventDate(date string) (string, error) {
	for _, layout := range eventDateFormats {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD or DD/Month/YY", ErrValidation, date)
}

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := scanner.Scan(&e.FamilyCode, &e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Creator, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Attendees = []string{}
	return &e, nil
}

const eventCols = `family_code, id, title, date, time, location, creator, created_at`

func (s *EventStore) Create(familyCode, title, date, eventTime, location, creator string) (*model.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" || date == "" || eventTime == "" {
		return nil, fmt.Errorf("%w: title, date, and time are required", ErrValidation)
	}

	isoDate, err := ParseEventDate(date)
	if err != nil {
		return nil, err
	}
	if location == "" {
		location = "TBD"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	exists, err := familyExists(tx, familyCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("family %s: %w", familyCode, ErrNotFound)
	}

	id, err := nextID(tx, "events", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO events (family_code, id, title, date, time, location, creator) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		familyCode, id, title, isoDate, eventTime, location, creator,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Get(familyCode, id)
}

func (s *EventStore) Get(familyCode string, id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE family_code = ? AND id = ?`, familyCode, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := s.attachAttendees(familyCode, []*model.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the family's events sorted ascending by date.
func (s *EventStore) List(familyCode string) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM events WHERE family_code = ? ORDER BY date ASC, id ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachAttendees(familyCode, list); err != nil {
		return nil, err
	}

	out := make([]model.Event, len(list))
	for i, e := range list {
		out[i] = *e
	}
	return out, nil
}

func (s *EventStore) attachAttendees(familyCode string, list []*model.Event) error {
	byID := make(map[int64]*model.Event, len(list))
	for _, e := range list {
		byID[e.ID] = e
	}

	rows, err := s.db.Query(
		`SELECT event_id, name FROM event_attendees WHERE family_code = ? ORDER BY name ASC`,
		familyCode,
	)
	if err != nil {
		return fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("scan attendee: %w", err)
		}
		if e, ok := byID[id]; ok {
			e.Attendees = append(e.Attendees, name)
		}
	}
	return rows.Err()
}

// Attend adds name to the event's attendee set. Joining twice is a no-op.
func (s *EventStore) Attend(familyCode string, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: attendee name is required", ErrValidation)
	}

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM events WHERE family_code = ? AND id = ?`, familyCode, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO event_attendees (family_code, event_id, name) VALUES (?, ?, ?)`,
		familyCode, id, name,
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}
	return nil
}
