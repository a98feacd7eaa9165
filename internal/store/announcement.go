package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

type AnnouncementStore struct {
	db *sql.DB
}

func NewAnnouncementStore(db *sql.DB) *AnnouncementStore {
	return &AnnouncementStore{db: db}
}

func scanAnnouncement(scanner interface{ Scan(...any) error }) (*model.Announcement, error) {
	var a model.Announcement
	err := scanner.Scan(&a.FamilyCode, &a.ID, &a.Author, &a.Role, &a.Content, &a.Priority, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Reactions = map[string][]string{}
	a.Comments = []model.Comment{}
	return &a, nil
}

const announcementCols = `family_code, id, author, role, content, priority, created_at`

func (s *AnnouncementStore) Create(familyCode, author, role, content, priority string) (*model.Announcement, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: announcement content is required", ErrValidation)
	}
	if priority == "" {
		priority = model.PriorityNormal
	}
	if priority != model.PriorityNormal && priority != model.PriorityHigh {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
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

	id, err := nextID(tx, "announcements", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO announcements (family_code, id, author, role, content, priority) VALUES (?, ?, ?, ?, ?, ?)`,
		familyCode, id, author, role, content, priority,
	)
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Get(familyCode, id)
}

func (s *AnnouncementStore) Get(familyCode string, id int64) (*model.Announcement, error) {
	row := s.db.QueryRow(
		`SELECT `+announcementCols+` FROM announcements WHERE family_code = ? AND id = ?`,
		familyCode, id,
	)
	a, err := scanAnnouncement(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("announcement %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}

	list := []*model.Announcement{a}
	if err := s.attachReactions(familyCode, list); err != nil {
		return nil, err
	}
	if err := s.attachComments(familyCode, list); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the family's announcements most-recent-first, with reaction
// sets and ordered comments attached.
func (s *AnnouncementStore) List(familyCode string) ([]model.Announcement, error) {
	rows, err := s.db.Query(
		`SELECT `+announcementCols+` FROM announcements WHERE family_code = ? ORDER BY id DESC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var list []*model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachReactions(familyCode, list); err != nil {
		return nil, err
	}
	if err := s.attachComments(familyCode, list); err != nil {
		return nil, err
	}

	out := make([]model.Announcement, len(list))
	for i, a := range list {
		out[i] = *a
	}
	return out, nil
}

func (s *AnnouncementStore) attachReactions(familyCode string, list []*model.Announcement) error {
	byID := make(map[int64]*model.Announcement, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}

	rows, err := s.db.Query(
		`SELECT announcement_id, emoji, username FROM announcement_reactions
		 WHERE family_code = ? ORDER BY emoji ASC, username ASC`,
		familyCode,
	)
	if err != nil {
		return fmt.Errorf("list announcement reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var emoji, username string
		if err := rows.Scan(&id, &emoji, &username); err != nil {
			return fmt.Errorf("scan reaction: %w", err)
		}
		if a, ok := byID[id]; ok {
			a.Reactions[emoji] = append(a.Reactions[emoji], username)
		}
	}
	return rows.Err()
}

func (s *AnnouncementStore) attachComments(familyCode string, list []*model.Announcement) error {
	byID := make(map[int64]*model.Announcement, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}

	rows, err := s.db.Query(
		`SELECT announcement_id, author, content FROM announcement_comments
		 WHERE family_code = ? ORDER BY id ASC`,
		familyCode,
	)
	if err != nil {
		return fmt.Errorf("list announcement comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var c model.Comment
		if err := rows.Scan(&id, &c.Author, &c.Content); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		if a, ok := byID[id]; ok {
			a.Comments = append(a.Comments, c)
		}
	}
	return rows.Err()
}

// React records username's emoji reaction. Reacting twice with the same
// emoji is a no-op (set semantics).
func (s *AnnouncementStore) React(familyCode string, id int64, emoji, username string) error {
	if emoji == "" || username == "" {
		return fmt.Errorf("%w: emoji and username are required", ErrValidation)
	}
	if err := s.exists(familyCode, id); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO announcement_reactions (family_code, announcement_id, emoji, username)
		 VALUES (?, ?, ?, ?)`,
		familyCode, id, emoji, username,
	)
	if err != nil {
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}

// AddComment appends a comment to the announcement's comment thread.
func (s *AnnouncementStore) AddComment(familyCode string, id int64, author, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	if err := s.exists(familyCode, id); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO announcement_comments (family_code, announcement_id, author, content) VALUES (?, ?, ?, ?)`,
		familyCode, id, author, content,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *AnnouncementStore) exists(familyCode string, id int64) error {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM announcements WHERE family_code = ? AND id = ?`,
		familyCode, id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("announcement %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check announcement: %w", err)
	}
	return nil
}
