package store

import (
	"errors"
	"testing"

	"hearthside/internal/database"
)

func setupFamilyTestDB(t *testing.T) *FamilyStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFamilyStore(db)
}

func TestFamilyCreate(t *testing.T) {
	fs := setupFamilyTestDB(t)

	f, err := fs.Create("The Smiths")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if f.Name != "The Smiths" {
		t.Errorf("name = %q, want %q", f.Name, "The Smiths")
	}
	if len(f.Code) != codeLength {
		t.Errorf("code length = %d, want %d", len(f.Code), codeLength)
	}
}

func TestFamilyCreateEmptyName(t *testing.T) {
	fs := setupFamilyTestDB(t)

	if _, err := fs.Create("   "); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestFamilyCreateWithCodeConflict(t *testing.T) {
	fs := setupFamilyTestDB(t)

	if _, err := fs.CreateWithCode("FAM00001", "First"); err != nil {
		t.Fatalf("create family: %v", err)
	}
	if _, err := fs.CreateWithCode("FAM00001", "Second"); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestFamilyGetNotFound(t *testing.T) {
	fs := setupFamilyTestDB(t)

	if _, err := fs.Get("NOPE1234"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFamilyDelete(t *testing.T) {
	fs := setupFamilyTestDB(t)

	f, err := fs.Create("Transient")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if err := fs.Delete(f.Code); err != nil {
		t.Fatalf("delete family: %v", err)
	}
	if _, err := fs.Get(f.Code); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := fs.Delete(f.Code); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestFamilyList(t *testing.T) {
	fs := setupFamilyTestDB(t)

	fs.CreateWithCode("AAAA1111", "Alpha")
	fs.CreateWithCode("BBBB2222", "Beta")

	families, err := fs.List()
	if err != nil {
		t.Fatalf("list families: %v", err)
	}
	if len(families) != 2 {
		t.Fatalf("len = %d, want 2", len(families))
	}
	if families[0].Code != "AAAA1111" || families[1].Code != "BBBB2222" {
		t.Errorf("unexpected order: %q, %q", families[0].Code, families[1].Code)
	}
}

func TestGenerateFamilyCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	exists := func(code string) (bool, error) { return seen[code], nil }

	for i := 0; i < 10000; i++ {
		code, err := GenerateFamilyCode(exists)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("code length = %d, want %d", len(code), codeLength)
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}
