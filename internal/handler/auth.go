package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"hearthside/internal/assets"
	"hearthside/internal/auth"
	"hearthside/internal/middleware"
	"hearthside/internal/model"
	"hearthside/internal/store"
)

// maxUploadBytes caps profile picture and photo uploads.
const maxUploadBytes = 5 << 20

type AuthHandler struct {
	members  *store.MemberStore
	sessions *store.SessionStore
	encoder  assets.Encoder
	logger   *slog.Logger
}

func NewAuthHandler(members *store.MemberStore, sessions *store.SessionStore, encoder assets.Encoder, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{members: members, sessions: sessions, encoder: encoder, logger: logger}
}

type loginRequest struct {
	FamilyCode string `json:"family_code"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	FamilyCode string        `json:"family_code"`
	Member     *model.Member `json:"member"`
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	member, err := h.members.Authenticate(req.FamilyCode, req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	sess, err := h.sessions.Create(req.FamilyCode, req.Username)
	if err != nil {
		h.logger.Error("create session", "error", err)
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusOK, sessionResponse{FamilyCode: req.FamilyCode, Member: member})
}

type registerRequest struct {
	FamilyCode string `json:"family_code"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar"`
	Status     string `json:"status"`
	Birthday   string `json:"birthday"`
	Bio        string `json:"bio"`
	Email      string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	member, err := h.members.Register(store.RegisterParams{
		FamilyCode: req.FamilyCode,
		Username:   req.Username,
		Name:       req.Name,
		Password:   req.Password,
		Role:       req.Role,
		Avatar:     req.Avatar,
		Status:     req.Status,
		Birthday:   req.Birthday,
		Bio:        req.Bio,
		Email:      req.Email,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	// Registration establishes the caller's session immediately.
	sess, err := h.sessions.Create(req.FamilyCode, member.Username)
	if err != nil {
		h.logger.Error("create session", "error", err)
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusCreated, sessionResponse{FamilyCode: req.FamilyCode, Member: member})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// UpdateProfilePicture accepts raw image bytes, hands them to the binary
// asset encoder, and stores the resulting reference on the caller's record.
func (h *AuthHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read image"})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image data is required"})
		return
	}

	ref, err := h.encoder.Encode(data, r.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("encode profile picture", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode image"})
		return
	}

	member, err := h.members.UpdateProfilePicture(ac.FamilyCode, ac.Username, ref)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}
