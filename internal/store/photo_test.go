package store

import (
	"errors"
	"testing"

	"hearthside/internal/database"
)

func setupPhotoTestDB(t *testing.T) *PhotoStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := NewFamilyStore(db).CreateWithCode("FAM00001", "Testers"); err != nil {
		t.Fatalf("create family: %v", err)
	}
	return NewPhotoStore(db)
}

func TestPhotoCreateDefaultCaption(t *testing.T) {
	ps := setupPhotoTestDB(t)

	p, err := ps.Create("FAM00001", "/assets/abc", "  ", "Alice")
	if err != nil {
		t.Fatalf("create photo: %v", err)
	}
	if p.Caption != defaultCaption {
		t.Errorf("caption = %q, want %q", p.Caption, defaultCaption)
	}
}

func TestPhotoCreateMissingRef(t *testing.T) {
	ps := setupPhotoTestDB(t)

	if _, err := ps.Create("FAM00001", "", "pic", "Alice"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestPhotoListNewestFirst(t *testing.T) {
	ps := setupPhotoTestDB(t)

	ps.Create("FAM00001", "/assets/a", "first", "Alice")
	ps.Create("FAM00001", "/assets/b", "second", "Alice")

	list, err := ps.List("FAM00001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Caption != "second" || list[1].Caption != "first" {
		t.Errorf("order = %q, %q, want newest first", list[0].Caption, list[1].Caption)
	}
}
