package store

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"hearthside/internal/model"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// GenerateFamilyCode produces an 8-character uppercase alphanumeric code,
// retrying until exists reports the code unused. With a 36^8 keyspace the
// retry loop is effectively unbounded-safe for realistic family counts.
func GenerateFamilyCode(exists func(code string) (bool, error)) (string, error) {
	for {
		buf := make([]byte, codeLength)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", fmt.Errorf("generate family code: %w", err)
			}
			buf[i] = codeAlphabet[n.Int64()]
		}
		code := string(buf)

		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}

type FamilyStore struct {
	db *sql.DB
}

func NewFamilyStore(db *sql.DB) *FamilyStore {
	return &FamilyStore{db: db}
}

func scanFamily(scanner interface{ Scan(...any) error }) (*model.Family, error) {
	var f model.Family
	err := scanner.Scan(&f.Code, &f.Name, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const familyCols = `code, name, created_at`

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func familyExists(q rowQuerier, code string) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM families WHERE code = ?`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check family: %w", err)
	}
	return true, nil
}

// Create registers a new family under a freshly generated code.
func (s *FamilyStore) Create(name string) (*model.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: family name is required", ErrValidation)
	}

	code, err := GenerateFamilyCode(s.Exists)
	if err != nil {
		return nil, err
	}
	return s.insert(code, name)
}

// CreateWithCode registers a family under a caller-chosen code. Used by
// seeding and tests; normal provisioning goes through Create.
func (s *FamilyStore) CreateWithCode(code, name string) (*model.Family, error) {
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: family code and name are required", ErrValidation)
	}

	taken, err := s.Exists(code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: family code %s already in use", ErrConflict, code)
	}
	return s.insert(code, name)
}

func (s *FamilyStore) insert(code, name string) (*model.Family, error) {
	_, err := s.db.Exec(`INSERT INTO families (code, name) VALUES (?, ?)`, code, name)
	if err != nil {
		return nil, fmt.Errorf("insert family: %w", err)
	}
	return s.Get(code)
}

func (s *FamilyStore) Get(code string) (*model.Family, error) {
	row := s.db.QueryRow(`SELECT `+familyCols+` FROM families WHERE code = ?`, code)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("family %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get family: %w", err)
	}
	return f, nil
}

func (s *FamilyStore) Exists(code string) (bool, error) {
	return familyExists(s.db, code)
}

// List returns all families in insertion order, for admin enumeration.
func (s *FamilyStore) List() ([]model.Family, error) {
	rows, err := s.db.Query(`SELECT ` + familyCols + ` FROM families ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()

	var families []model.Family
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		families = append(families, *f)
	}
	return families, rows.Err()
}

// Delete removes the family and, via cascading foreign keys, every member
// and piece of content it owns. Sessions pointing at the code are left
// behind; subsequent requests on them fail with ErrNotFound.
func (s *FamilyStore) Delete(code string) error {
	result, err := s.db.Exec(`DELETE FROM families WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("family %s: %w", code, ErrNotFound)
	}
	return nil
}
