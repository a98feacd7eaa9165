package handler

import (
	"log/slog"
	"net/http"
	"time"

	"hearthside/internal/auth"
	"hearthside/internal/format"
	"hearthside/internal/model"
	"hearthside/internal/store"
)

type DashboardHandler struct {
	stats  *store.StatsStore
	logger *slog.Logger
}

func NewDashboardHandler(stats *store.StatsStore, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, logger: logger}
}

type dashboardResponse struct {
	Stats          *model.FamilyStats `json:"stats"`
	Birthdays      []model.Birthday   `json:"birthdays"`
	LastMessageAgo string             `json:"last_message_ago,omitempty"`
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	now := time.Now()

	stats, err := h.stats.Overview(ac.FamilyCode, now)
	if err != nil {
		respondError(w, err)
		return
	}

	birthdays, err := h.stats.UpcomingBirthdays(ac.FamilyCode, now)
	if err != nil {
		h.logger.Error("upcoming birthdays", "error", err)
		respondError(w, err)
		return
	}
	if birthdays == nil {
		birthdays = []model.Birthday{}
	}

	resp := dashboardResponse{Stats: stats, Birthdays: birthdays}
	if stats.LastMessageAt != nil {
		resp.LastMessageAgo = format.RelativeTime(*stats.LastMessageAt, now)
	}
	writeJSON(w, http.StatusOK, resp)
}
