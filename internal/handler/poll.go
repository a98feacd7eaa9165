package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"hearthside/internal/auth"
	"hearthside/internal/model"
	"hearthside/internal/store"
	ws "hearthside/internal/websocket"
)

type PollHandler struct {
	polls  *store.PollStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewPollHandler(polls *store.PollStore, hub *ws.Hub, logger *slog.Logger) *PollHandler {
	return &PollHandler{polls: polls, hub: hub, logger: logger}
}

type pollRequest struct {
	Question string `json:"question"`
	Options  string `json:"options"` // one option per line
}

func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req pollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	poll, err := h.polls.Create(ac.FamilyCode, req.Question, strings.Split(req.Options, "\n"), ac.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("poll", "created", poll.ID, nil))
	writeJSON(w, http.StatusCreated, poll)
}

type pollView struct {
	model.Poll
	TotalVotes  int                `json:"total_votes"`
	Percentages map[string]float64 `json:"percentages"`
}

// List returns polls newest first with vote tallies attached.
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	polls, err := h.polls.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list polls", "error", err)
		respondError(w, err)
		return
	}

	views := make([]pollView, len(polls))
	for i, p := range polls {
		percentages := make(map[string]float64, len(p.Options))
		for _, opt := range p.Options {
			percentages[opt.Text] = p.Percentage(opt.Text)
		}
		views[i] = pollView{Poll: p, TotalVotes: p.TotalVotes(), Percentages: percentages}
	}
	writeJSON(w, http.StatusOK, views)
}

type voteRequest struct {
	Option string `json:"option"`
}

func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.polls.Vote(ac.FamilyCode, id, req.Option, ac.Username); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("poll", "voted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "voted"})
}
