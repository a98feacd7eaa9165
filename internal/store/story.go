package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hearthside/internal/model"
)

type StoryStore struct {
	db *sql.DB
}

func NewStoryStore(db *sql.DB) *StoryStore {
	return &StoryStore{db: db}
}

func scanStory(scanner interface{ Scan(...any) error }) (*model.Story, error) {
	var s model.Story
	err := scanner.Scan(&s.FamilyCode, &s.ID, &s.Author, &s.Role, &s.Content, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const storyCols = `family_code, id, author, role, content, created_at`

func (s *StoryStore) Create(familyCode, author, role, content string) (*model.Story, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: story content is required", ErrValidation)
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

	id, err := nextID(tx, "stories", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO stories (family_code, id, author, role, content) VALUES (?, ?, ?, ?, ?)`,
		familyCode, id, author, role, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert story: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+storyCols+` FROM stories WHERE family_code = ? AND id = ?`, familyCode, id)
	return scanStory(row)
}

// List returns every stored story in insertion order, expired or not.
// Expiry never deletes rows; it only hides them from ListActive.
func (s *StoryStore) List(familyCode string) ([]model.Story, error) {
	rows, err := s.db.Query(
		`SELECT `+storyCols+` FROM stories WHERE family_code = ? ORDER BY id ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, *st)
	}
	return stories, rows.Err()
}

// ListActive returns the stories still inside their 24-hour visibility
// window at now, in insertion order.
func (s *StoryStore) ListActive(familyCode string, now time.Time) ([]model.Story, error) {
	all, err := s.List(familyCode)
	if err != nil {
		return nil, err
	}

	active := all[:0:0]
	for _, st := range all {
		if st.Active(now) {
			active = append(active, st)
		}
	}
	return active, nil
}
