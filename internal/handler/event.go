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

type EventHandler struct {
	events *store.EventStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewEventHandler(events *store.EventStore, hub *ws.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, hub: hub, logger: logger}
}

type eventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	e, err := h.events.Create(ac.FamilyCode, req.Title, req.Date, req.Time, req.Location, ac.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("event", "created", e.ID, nil))
	writeJSON(w, http.StatusCreated, e)
}

type eventView struct {
	model.Event
	IsToday bool `json:"is_today"`
}

// List returns events ascending by date, each flagged when it falls on the
// current day so the renderer can distinguish it.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	events, err := h.events.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list events", "error", err)
		respondError(w, err)
		return
	}

	now := time.Now()
	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = eventView{Event: e, IsToday: e.OccursOn(now)}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *EventHandler) Attend(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.events.Attend(ac.FamilyCode, id, ac.Name); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("event", "attending", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "attending"})
}
