package store

import (
	"testing"
	"time"

	"hearthside/internal/database"
)

func setupSessionTestDB(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db, ttl)
}

func TestSessionCreate(t *testing.T) {
	ss := setupSessionTestDB(t, time.Hour)

	sess, err := ss.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 { // 32 bytes hex-encoded
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.FamilyCode != "FAM00001" || sess.Username != "alice" {
		t.Errorf("identity = %s/%s, want FAM00001/alice", sess.FamilyCode, sess.Username)
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss := setupSessionTestDB(t, time.Hour)

	created, err := ss.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}
}

func TestSessionGetByTokenNotFound(t *testing.T) {
	ss := setupSessionTestDB(t, time.Hour)

	sess, err := ss.GetByToken("nonexistent")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for nonexistent token")
	}
}

func TestSessionExpired(t *testing.T) {
	ss := setupSessionTestDB(t, -time.Minute)

	created, err := ss.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for expired session")
	}
}

func TestSessionDelete(t *testing.T) {
	ss := setupSessionTestDB(t, time.Hour)

	created, err := ss.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := ss.Delete(created.Token); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil after delete")
	}

	// Deleting again is a no-op.
	if err := ss.Delete(created.Token); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	live := NewSessionStore(db, time.Hour)
	stale := NewSessionStore(db, -time.Minute)

	kept, err := live.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create live session: %v", err)
	}
	if _, err := stale.Create("FAM00001", "bob"); err != nil {
		t.Fatalf("create stale session: %v", err)
	}

	n, err := live.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	sess, err := live.GetByToken(kept.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Error("live session was deleted")
	}
}
