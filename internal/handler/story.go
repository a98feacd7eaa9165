package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hearthside/internal/auth"
	"hearthside/internal/model"
	"hearthside/internal/store"
	ws "hearthside/internal/websocket"
)

type StoryHandler struct {
	stories *store.StoryStore
	hub     *ws.Hub
	logger  *slog.Logger
}

func NewStoryHandler(stories *store.StoryStore, hub *ws.Hub, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{stories: stories, hub: hub, logger: logger}
}

type storyRequest struct {
	Content string `json:"content"`
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	story, err := h.stories.Create(ac.FamilyCode, ac.Name, ac.Role, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("story", "created", story.ID, nil))
	writeJSON(w, http.StatusCreated, story)
}

// List returns the stories still inside their 24-hour window. Expired
// stories stay stored but are filtered out here.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	stories, err := h.stories.ListActive(ac.FamilyCode, time.Now())
	if err != nil {
		h.logger.Error("list stories", "error", err)
		respondError(w, err)
		return
	}
	if stories == nil {
		stories = []model.Story{}
	}
	writeJSON(w, http.StatusOK, stories)
}
