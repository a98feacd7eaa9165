package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

type PollStore struct {
	db *sql.DB
}

func NewPollStore(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

// Create opens a poll. Options are trimmed, empties dropped, duplicates
// collapsed; at least 2 distinct options must remain.
func (s *PollStore) Create(familyCode, question string, options []string, creator string) (*model.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: poll question is required", ErrValidation)
	}

	var distinct []string
	seen := map[string]bool{}
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || seen[opt] {
			continue
		}
		seen[opt] = true
		distinct = append(distinct, opt)
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: a poll needs at least 2 distinct options", ErrValidation)
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

	id, err := nextID(tx, "polls", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO polls (family_code, id, question, creator) VALUES (?, ?, ?, ?)`,
		familyCode, id, question, creator,
	)
	if err != nil {
		return nil, fmt.Errorf("insert poll: %w", err)
	}
	for i, opt := range distinct {
		_, err = tx.Exec(
			`INSERT INTO poll_options (family_code, poll_id, position, text) VALUES (?, ?, ?, ?)`,
			familyCode, id, i, opt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert poll option: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Get(familyCode, id)
}

func (s *PollStore) Get(familyCode string, id int64) (*model.Poll, error) {
	var p model.Poll
	err := s.db.QueryRow(
		`SELECT family_code, id, question, creator, created_at FROM polls WHERE family_code = ? AND id = ?`,
		familyCode, id,
	).Scan(&p.FamilyCode, &p.ID, &p.Question, &p.Creator, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("poll %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get poll: %w", err)
	}

	polls := []*model.Poll{&p}
	if err := s.attachOptions(familyCode, polls); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the family's polls newest first, with per-option voter sets.
func (s *PollStore) List(familyCode string) ([]model.Poll, error) {
	rows, err := s.db.Query(
		`SELECT family_code, id, question, creator, created_at FROM polls WHERE family_code = ? ORDER BY id DESC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	defer rows.Close()

	var list []*model.Poll
	for rows.Next() {
		var p model.Poll
		if err := rows.Scan(&p.FamilyCode, &p.ID, &p.Question, &p.Creator, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachOptions(familyCode, list); err != nil {
		return nil, err
	}

	out := make([]model.Poll, len(list))
	for i, p := range list {
		out[i] = *p
	}
	return out, nil
}

func (s *PollStore) attachOptions(familyCode string, list []*model.Poll) error {
	byID := make(map[int64]*model.Poll, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}

	rows, err := s.db.Query(
		`SELECT poll_id, text FROM poll_options WHERE family_code = ? ORDER BY poll_id ASC, position ASC`,
		familyCode,
	)
	if err != nil {
		return fmt.Errorf("list poll options: %w", err)
	}
	defer rows.Close()

	optIndex := map[int64]map[string]int{}
	for rows.Next() {
		var pollID int64
		var text string
		if err := rows.Scan(&pollID, &text); err != nil {
			return fmt.Errorf("scan poll option: %w", err)
		}
		p, ok := byID[pollID]
		if !ok {
			continue
		}
		if optIndex[pollID] == nil {
			optIndex[pollID] = map[string]int{}
		}
		optIndex[pollID][text] = len(p.Options)
		p.Options = append(p.Options, model.PollOption{Text: text, Voters: []string{}})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	votes, err := s.db.Query(
		`SELECT poll_id, option_text, voter FROM poll_votes WHERE family_code = ? ORDER BY voter ASC`,
		familyCode,
	)
	if err != nil {
		return fmt.Errorf("list poll votes: %w", err)
	}
	defer votes.Close()

	for votes.Next() {
		var pollID int64
		var text, voter string
		if err := votes.Scan(&pollID, &text, &voter); err != nil {
			return fmt.Errorf("scan poll vote: %w", err)
		}
		p, ok := byID[pollID]
		if !ok {
			continue
		}
		if i, ok := optIndex[pollID][text]; ok {
			p.Options[i].Voters = append(p.Options[i].Voters, voter)
		}
	}
	return votes.Err()
}

// Vote adds voter to the option's voter set. Voting the same option twice
// is a no-op; voting for several options of one poll is allowed, matching
// the permissive shape of the original data model.
func (s *PollStore) Vote(familyCode string, pollID int64, option, voter string) error {
	if option == "" || voter == "" {
		return fmt.Errorf("%w: option and voter are required", ErrValidation)
	}

	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM poll_options WHERE family_code = ? AND poll_id = ? AND text = ?`,
		familyCode, pollID, option,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("poll %d option %q: %w", pollID, option, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check poll option: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO poll_votes (family_code, poll_id, option_text, voter) VALUES (?, ?, ?, ?)`,
		familyCode, pollID, option, voter,
	)
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}
