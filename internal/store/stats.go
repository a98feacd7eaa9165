package store

import (
	"database/sql"
	"fmt"
	"time"

	"hearthside/internal/model"
)

// birthdayWindow is how far ahead the dashboard looks for birthdays.
const birthdayWindow = 30

type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Overview computes the dashboard counters for one family.
func (s *StatsStore) Overview(familyCode string, now time.Time) (*model.FamilyStats, error) {
	exists, err := familyExists(s.db, familyCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("family %s: %w", familyCode, ErrNotFound)
	}

	var stats model.FamilyStats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM members WHERE family_code = ?`, &stats.Members},
		{`SELECT COUNT(*) FROM announcements WHERE family_code = ?`, &stats.Announcements},
		{`SELECT COUNT(*) FROM messages WHERE family_code = ?`, &stats.Messages},
		{`SELECT COUNT(*) FROM photos WHERE family_code = ?`, &stats.Photos},
		{`SELECT COUNT(*) FROM polls WHERE family_code = ?`, &stats.Polls},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, familyCode).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	today := now.Format("2006-01-02")
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE family_code = ? AND date >= ?`,
		familyCode, today,
	).Scan(&stats.UpcomingEvents)
	if err != nil {
		return nil, fmt.Errorf("count upcoming events: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT
		    COUNT(CASE WHEN status = ? THEN 1 END),
		    COUNT(CASE WHEN status = ? THEN 1 END)
		 FROM tasks WHERE family_code = ?`,
		model.TaskPending, model.TaskCompleted, familyCode,
	).Scan(&stats.PendingTasks, &stats.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	var last sql.NullTime
	err = s.db.QueryRow(
		`SELECT MAX(created_at) FROM messages WHERE family_code = ?`,
		familyCode,
	).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("last message: %w", err)
	}
	if last.Valid {
		stats.LastMessageAt = &last.Time
	}

	return &stats, nil
}

// UpcomingBirthdays lists members whose next birthday falls within the next
// 30 days of now. The next birthday is the member's birth date with the
// year replaced by the current year, rolled forward a year if that date has
// already passed.
func (s *StatsStore) UpcomingBirthdays(familyCode string, now time.Time) ([]model.Birthday, error) {
	rows, err := s.db.Query(
		`SELECT username, name, birthday FROM members WHERE family_code = ? AND birthday != '' ORDER BY username ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list birthdays: %w", err)
	}
	defer rows.Close()

	var upcoming []model.Birthday
	for rows.Next() {
		var username, name, birthday string
		if err := rows.Scan(&username, &name, &birthday); err != nil {
			return nil, fmt.Errorf("scan birthday: %w", err)
		}

		born, err := time.Parse("2006-01-02", birthday)
		if err != nil {
			// Malformed birthdays are skipped, not surfaced.
			continue
		}

		days := daysUntilBirthday(born, now)
		if days >= 0 && days <= birthdayWindow {
			upcoming = append(upcoming, model.Birthday{Username: username, Name: name, DaysUntil: days})
		}
	}
	return upcoming, rows.Err()
}

func daysUntilBirthday(born, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(now.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(now.Year()+1, born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24)
}
