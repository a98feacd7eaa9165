package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func scanMessage(scanner interface{ Scan(...any) error }) (*model.Message, error) {
	var m model.Message
	err := scanner.Scan(&m.FamilyCode, &m.ID, &m.Author, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Reactions = map[string][]string{}
	return &m, nil
}

const messageCols = `family_code, id, author, role, content, created_at`

func (s *MessageStore) Create(familyCode, author, role, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
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

	id, err := nextID(tx, "messages", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO messages (family_code, id, author, role, content) VALUES (?, ?, ?, ?, ?)`,
		familyCode, id, author, role, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+messageCols+` FROM messages WHERE family_code = ? AND id = ?`, familyCode, id)
	return scanMessage(row)
}

// List returns the family's chat in chronological order, oldest first.
func (s *MessageStore) List(familyCode string) ([]model.Message, error) {
	rows, err := s.db.Query(
		`SELECT `+messageCols+` FROM messages WHERE family_code = ? ORDER BY id ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var list []*model.Message
	byID := make(map[int64]*model.Message)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, m)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reactions, err := s.db.Query(
		`SELECT message_id, emoji, username FROM message_reactions
		 WHERE family_code = ? ORDER BY emoji ASC, username ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list message reactions: %w", err)
	}
	defer reactions.Close()

	for reactions.Next() {
		var id int64
		var emoji, username string
		if err := reactions.Scan(&id, &emoji, &username); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		if m, ok := byID[id]; ok {
			m.Reactions[emoji] = append(m.Reactions[emoji], username)
		}
	}
	if err := reactions.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Message, len(list))
	for i, m := range list {
		out[i] = *m
	}
	return out, nil
}

// React records username's emoji reaction on a message, set semantics.
func (s *MessageStore) React(familyCode string, id int64, emoji, username string) error {
	if emoji == "" || username == "" {
		return fmt.Errorf("%w: emoji and username are required", ErrValidation)
	}

	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM messages WHERE family_code = ? AND id = ?`,
		familyCode, id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check message: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO message_reactions (family_code, message_id, emoji, username) VALUES (?, ?, ?, ?)`,
		familyCode, id, emoji, username,
	)
	if err != nil {
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}
