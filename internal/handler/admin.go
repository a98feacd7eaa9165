package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hearthside/internal/model"
	"hearthside/internal/store"
)

// AdminHandler serves family provisioning. Admin authentication is enforced
// by middleware at the router, not here.
type AdminHandler struct {
	families *store.FamilyStore
	logger   *slog.Logger
}

func NewAdminHandler(families *store.FamilyStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{families: families, logger: logger}
}

type createFamilyRequest struct {
	Name string `json:"name"`
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	family, err := h.families.Create(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	h.logger.Info("family created", "code", family.Code, "name", family.Name)
	writeJSON(w, http.StatusCreated, family)
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.families.List()
	if err != nil {
		h.logger.Error("list families", "error", err)
		respondError(w, err)
		return
	}
	if families == nil {
		families = []model.Family{}
	}
	writeJSON(w, http.StatusOK, families)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if err := h.families.Delete(code); err != nil {
		respondError(w, err)
		return
	}
	h.logger.Info("family deleted", "code", code)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
