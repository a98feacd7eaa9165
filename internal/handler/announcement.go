package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hearthside/internal/auth"
	"hearthside/internal/model"
	"hearthside/internal/store"
	ws "hearthside/internal/websocket"
)

type AnnouncementHandler struct {
	announcements *store.AnnouncementStore
	hub           *ws.Hub
	logger        *slog.Logger
}

func NewAnnouncementHandler(announcements *store.AnnouncementStore, hub *ws.Hub, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements, hub: hub, logger: logger}
}

type announcementRequest struct {
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	a, err := h.announcements.Create(ac.FamilyCode, ac.Name, ac.Role, req.Content, req.Priority)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("announcement", "created", a.ID, nil))
	writeJSON(w, http.StatusCreated, a)
}

// List returns announcements most-recent-first.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	list, err := h.announcements.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list announcements", "error", err)
		respondError(w, err)
		return
	}
	if list == nil {
		list = []model.Announcement{}
	}
	writeJSON(w, http.StatusOK, list)
}

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

func (h *AnnouncementHandler) React(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.announcements.React(ac.FamilyCode, id, req.Emoji, ac.Username); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("announcement", "reacted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "reacted"})
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *AnnouncementHandler) Comment(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.announcements.AddComment(ac.FamilyCode, id, ac.Name, req.Content); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("announcement", "commented", id, nil))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "commented"})
}
