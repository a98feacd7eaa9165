package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hearthside/internal/auth"
	"hearthside/internal/database"
	"hearthside/internal/store"
)

func setupAuthTest(t *testing.T) (*store.SessionStore, *store.MemberStore, *store.FamilyStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.NewSessionStore(db, time.Hour), store.NewMemberStore(db), store.NewFamilyStore(db)
}

func loginTestMember(t *testing.T, sessions *store.SessionStore, members *store.MemberStore, families *store.FamilyStore) string {
	t.Helper()
	if _, err := families.CreateWithCode("FAM00001", "Testers"); err != nil {
		t.Fatalf("create family: %v", err)
	}
	_, err := members.Register(store.RegisterParams{
		FamilyCode: "FAM00001",
		Username:   "alice",
		Name:       "Alice",
		Password:   "pw",
		Role:       "Mother",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	sess, err := sessions.Create("FAM00001", "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess.Token
}

func TestRequireAuthNoCookie(t *testing.T) {
	sessions, members, _ := setupAuthTest(t)

	handler := RequireAuth(sessions, members)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/messages", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	sessions, members, _ := setupAuthTest(t)

	handler := RequireAuth(sessions, members)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/api/messages", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthPopulatesContext(t *testing.T) {
	sessions, members, families := setupAuthTest(t)
	token := loginTestMember(t, sessions, members, families)

	var got auth.Context
	handler := RequireAuth(sessions, members)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("no auth context")
		}
		got = ac
	}))

	req := httptest.NewRequest("GET", "/api/messages", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.FamilyCode != "FAM00001" || got.Username != "alice" {
		t.Errorf("context = %+v, want FAM00001/alice", got)
	}
	if got.Role != "Mother" || got.Name != "Alice" {
		t.Errorf("context = %+v, want member details resolved", got)
	}
}

func TestRequireAuthAfterFamilyDeleted(t *testing.T) {
	sessions, members, families := setupAuthTest(t)
	token := loginTestMember(t, sessions, members, families)

	// Deleting the family cascades to members but leaves the session row.
	// The stale session must be rejected, not crash.
	if err := families.Delete("FAM00001"); err != nil {
		t.Fatalf("delete family: %v", err)
	}

	handler := RequireAuth(sessions, members)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/api/messages", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	registry := auth.NewAdminRegistry(map[string]string{"admin": "admin123"})

	handler := RequireAdmin(registry)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/families", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credentials: status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate challenge")
	}

	req := httptest.NewRequest("GET", "/api/admin/families", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/admin/families", nil)
	req.SetBasicAuth("admin", "admin123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("good credentials: status = %d, want 204", rec.Code)
	}
}
