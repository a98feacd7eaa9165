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

type MessageHandler struct {
	messages *store.MessageStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewMessageHandler(messages *store.MessageStore, hub *ws.Hub, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub, logger: logger}
}

type messageRequest struct {
	Content string `json:"content"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	m, err := h.messages.Create(ac.FamilyCode, ac.Name, ac.Role, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("message", "created", m.ID, nil))
	writeJSON(w, http.StatusCreated, m)
}

// List returns the chat in chronological order, oldest first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	list, err := h.messages.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list messages", "error", err)
		respondError(w, err)
		return
	}
	if list == nil {
		list = []model.Message{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MessageHandler) React(w http.ResponseWriter, r *http.Request) {
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

	if err := h.messages.React(ac.FamilyCode, id, req.Emoji, ac.Username); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("message", "reacted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "reacted"})
}
