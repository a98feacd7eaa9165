package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

const defaultCaption = "Family photo"

type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

func scanPhoto(scanner interface{ Scan(...any) error }) (*model.Photo, error) {
	var p model.Photo
	err := scanner.Scan(&p.FamilyCode, &p.ID, &p.ImageRef, &p.Caption, &p.Author, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const photoCols = `family_code, id, image_ref, caption, author, created_at`

// Create stores a photo post. The image reference comes from the binary
// asset encoder; an empty caption falls back to a placeholder.
func (s *PhotoStore) Create(familyCode, imageRef, caption, author string) (*model.Photo, error) {
	if imageRef == "" {
		return nil, fmt.Errorf("%w: image reference is required", ErrValidation)
	}
	caption = strings.TrimSpace(caption)
	if caption == "" {
		caption = defaultCaption
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

	id, err := nextID(tx, "photos", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO photos (family_code, id, image_ref, caption, author) VALUES (?, ?, ?, ?, ?)`,
		familyCode, id, imageRef, caption, author,
	)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+photoCols+` FROM photos WHERE family_code = ? AND id = ?`, familyCode, id)
	return scanPhoto(row)
}

// List returns the family's photos newest first.
func (s *PhotoStore) List(familyCode string) ([]model.Photo, error) {
	rows, err := s.db.Query(
		`SELECT `+photoCols+` FROM photos WHERE family_code = ? ORDER BY id DESC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}
