package store

import (
	"errors"
	"testing"

	"hearthside/internal/database"
)

func setupMessageTestDB(t *testing.T) *MessageStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := NewFamilyStore(db).CreateWithCode("FAM00001", "Testers"); err != nil {
		t.Fatalf("create family: %v", err)
	}
	return NewMessageStore(db)
}

func TestMessageCreateAndOrder(t *testing.T) {
	ms := setupMessageTestDB(t)

	for _, content := range []string{"one", "two", "three"} {
		if _, err := ms.Create("FAM00001", "Alice", "Mother", content); err != nil {
			t.Fatalf("create message %q: %v", content, err)
		}
	}

	list, err := ms.List("FAM00001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"one", "two", "three"} {
		if list[i].Content != want {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Content, want)
		}
		if list[i].ID != int64(i+1) {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, i+1)
		}
	}
}

func TestMessageCreateBlank(t *testing.T) {
	ms := setupMessageTestDB(t)

	if _, err := ms.Create("FAM00001", "Alice", "Mother", "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestMessageReact(t *testing.T) {
	ms := setupMessageTestDB(t)

	m, err := ms.Create("FAM00001", "Alice", "Mother", "hello")
	if err != nil {
		t.Fatalf("create message: %v", err)
	}

	if err := ms.React("FAM00001", m.ID, "😂", "bob"); err != nil {
		t.Fatalf("react: %v", err)
	}
	if err := ms.React("FAM00001", m.ID, "😂", "bob"); err != nil {
		t.Fatalf("repeat react: %v", err)
	}

	list, err := ms.List("FAM00001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := list[0].Reactions["😂"]; len(got) != 1 || got[0] != "bob" {
		t.Errorf("reactions = %v, want [bob]", got)
	}
}

func TestMessageReactNotFound(t *testing.T) {
	ms := setupMessageTestDB(t)

	if err := ms.React("FAM00001", 42, "😂", "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
