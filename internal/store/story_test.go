package store

import (
	"testing"
	"time"

	"hearthside/internal/database"
)

func setupStoryTestDB(t *testing.T) (*StoryStore, func(backdate time.Duration, id int64)) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := NewFamilyStore(db).CreateWithCode("FAM00001", "Testers"); err != nil {
		t.Fatalf("create family: %v", err)
	}

	backdate := func(d time.Duration, id int64) {
		t.Helper()
		_, err := db.Exec(
			`UPDATE stories SET created_at = ? WHERE family_code = ? AND id = ?`,
			time.Now().Add(-d).UTC(), "FAM00001", id,
		)
		if err != nil {
			t.Fatalf("backdate story %d: %v", id, err)
		}
	}
	return NewStoryStore(db), backdate
}

func TestStoryActiveWindow(t *testing.T) {
	ss, backdate := setupStoryTestDB(t)

	fresh, err := ss.Create("FAM00001", "Alice", "Mother", "still here")
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	old, err := ss.Create("FAM00001", "Bob", "Father", "fading")
	if err != nil {
		t.Fatalf("create story: %v", err)
	}

	backdate(23*time.Hour, fresh.ID)
	backdate(25*time.Hour, old.ID)

	active, err := ss.ListActive("FAM00001", time.Now())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active = %d, want 1", len(active))
	}
	if active[0].ID != fresh.ID {
		t.Errorf("active story = %d, want %d", active[0].ID, fresh.ID)
	}

	// Expiry hides stories; it never deletes them.
	all, err := ss.List("FAM00001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("stored = %d, want 2", len(all))
	}
}

func TestStoryCreate(t *testing.T) {
	ss, _ := setupStoryTestDB(t)

	s, err := ss.Create("FAM00001", "Alice", "Mother", "beach day")
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	if s.ID != 1 {
		t.Errorf("id = %d, want 1", s.ID)
	}
	if !s.Active(time.Now()) {
		t.Error("fresh story should be active")
	}
}
