package handler

import (
	"net/http"

	"hearthside/internal/auth"
	"hearthside/internal/format"
	"hearthside/internal/model"
	"hearthside/internal/store"
)

type MemberHandler struct {
	members *store.MemberStore
}

func NewMemberHandler(members *store.MemberStore) *MemberHandler {
	return &MemberHandler{members: members}
}

type memberView struct {
	model.Member
	RoleColor string `json:"role_color"`
	IsSelf    bool   `json:"is_self"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	members, err := h.members.List(ac.FamilyCode)
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]memberView, len(members))
	for i, m := range members {
		views[i] = memberView{
			Member:    m,
			RoleColor: format.RoleColor(m.Role),
			IsSelf:    m.Username == ac.Username,
		}
	}
	writeJSON(w, http.StatusOK, views)
}
