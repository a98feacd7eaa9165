package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

const (
	defaultAvatar = "👤"
	defaultStatus = "Available"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var profilePic sql.NullString
	err := scanner.Scan(
		&m.FamilyCode, &m.Username, &m.Name, &m.Avatar, &m.Status,
		&m.Password, &m.Role, &m.Birthday, &m.Bio, &m.Email,
		&profilePic, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if profilePic.Valid {
		m.ProfilePic = &profilePic.String
	}
	return &m, nil
}

const memberCols = `family_code, username, name, avatar, status, password, role, birthday, bio, email, profile_pic, created_at`

// RegisterParams carries the registration form. Name, Username, Password,
// and Role are required; the rest default when blank.
type RegisterParams struct {
	FamilyCode string
	Username   string
	Name       string
	Password   string
	Role       string
	Avatar     string
	Status     string
	Birthday   string
	Bio        string
	Email      string
}

// Register creates a member account inside a family. Usernames are unique
// per family; the same username may exist in different families.
func (s *MemberStore) Register(p RegisterParams) (*model.Member, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Name = strings.TrimSpace(p.Name)

	if p.Name == "" || p.Username == "" || p.Password == "" || p.Role == "" {
		return nil, fmt.Errorf("%w: name, username, password, and role are required", ErrValidation)
	}
	if !model.ValidRole(p.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, p.Role)
	}

	exists, err := familyExists(s.db, p.FamilyCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("family %s: %w", p.FamilyCode, ErrNotFound)
	}

	existing, err := s.get(p.FamilyCode, p.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q already exists in this family", ErrConflict, p.Username)
	}

	if p.Avatar == "" {
		p.Avatar = defaultAvatar
	}
	if p.Status == "" {
		p.Status = defaultStatus
	}

	_, err = s.db.Exec(
		`INSERT INTO members (family_code, username, name, avatar, status, password, role, birthday, bio, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FamilyCode, p.Username, p.Name, p.Avatar, p.Status, p.Password, p.Role, p.Birthday, p.Bio, p.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return s.Get(p.FamilyCode, p.Username)
}

// Authenticate checks credentials by exact string comparison. The stored
// password is plaintext; this mirrors the trust level of the original
// application and must not be hardened here.
func (s *MemberStore) Authenticate(familyCode, username, password string) (*model.Member, error) {
	exists, err := familyExists(s.db, familyCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("family %s: %w", familyCode, ErrNotFound)
	}

	m, err := s.get(familyCode, username)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Password != password {
		return nil, fmt.Errorf("authenticate %s: %w", username, ErrAuth)
	}
	return m, nil
}

func (s *MemberStore) Get(familyCode, username string) (*model.Member, error) {
	m, err := s.get(familyCode, username)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("member %s: %w", username, ErrNotFound)
	}
	return m, nil
}

func (s *MemberStore) get(familyCode, username string) (*model.Member, error) {
	row := s.db.QueryRow(
		`SELECT `+memberCols+` FROM members WHERE family_code = ? AND username = ?`,
		familyCode, username,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) List(familyCode string) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM members WHERE family_code = ? ORDER BY created_at ASC, username ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// UpdateProfilePicture stores the asset reference produced by the binary
// asset encoder on the member record.
func (s *MemberStore) UpdateProfilePicture(familyCode, username, ref string) (*model.Member, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: image reference is required", ErrValidation)
	}
	result, err := s.db.Exec(
		`UPDATE members SET profile_pic = ? WHERE family_code = ? AND username = ?`,
		ref, familyCode, username,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile picture: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update profile picture: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("member %s: %w", username, ErrNotFound)
	}
	return s.Get(familyCode, username)
}
