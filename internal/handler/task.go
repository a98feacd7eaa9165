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

type TaskHandler struct {
	tasks  *store.TaskStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTaskHandler(tasks *store.TaskStore, hub *ws.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, hub: hub, logger: logger}
}

type taskRequest struct {
	Task       string `json:"task"`
	AssignedTo string `json:"assigned_to"`
	Due        string `json:"due"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	t, err := h.tasks.Create(ac.FamilyCode, req.Task, req.AssignedTo, req.Due, ac.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("task", "created", t.ID, nil))
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	tasks, err := h.tasks.List(ac.FamilyCode)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		respondError(w, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	t, err := h.tasks.Complete(ac.FamilyCode, id)
	if err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(ac.FamilyCode, ws.NewMessage("task", "completed", t.ID, nil))
	writeJSON(w, http.StatusOK, t)
}
