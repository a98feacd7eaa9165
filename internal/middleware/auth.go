package middleware

import (
	"encoding/json"
	"net/http"

	"hearthside/internal/auth"
	"hearthside/internal/store"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "hearthside_session"

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RequireAuth validates the session cookie, resolves the member it points
// at, and populates the auth Context. Requests without a live session are
// rejected with 401.
func RequireAuth(sessions *store.SessionStore, members *store.MemberStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "authentication required")
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				unauthorized(w, "authentication required")
				return
			}

			member, err := members.Get(sess.FamilyCode, sess.Username)
			if err != nil {
				// Family or member gone since login (e.g. family deleted).
				unauthorized(w, "session no longer valid")
				return
			}

			ac := auth.Context{
				FamilyCode: sess.FamilyCode,
				Username:   member.Username,
				Name:       member.Name,
				Role:       member.Role,
				SessionID:  sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates family provisioning routes with HTTP basic auth
// against the fixed admin registry.
func RequireAdmin(registry *auth.AdminRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !registry.Authenticate(username, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="hearthside admin"`)
				unauthorized(w, "admin credentials required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
