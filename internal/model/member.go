package model

import "time"

// Family roles. Role determines the accent color used by the rendering layer.
const (
	RoleFather      = "Father"
	RoleMother      = "Mother"
	RoleSon         = "Son"
	RoleDaughter    = "Daughter"
	RoleGrandparent = "Grandparent"
	RoleOther       = "Other"
)

// ValidRole reports whether role is one of the recognized family roles.
func ValidRole(role string) bool {
	switch role {
	case RoleFather, RoleMother, RoleSon, RoleDaughter, RoleGrandparent, RoleOther:
		return true
	}
	return false
}

type Member struct {
	FamilyCode string    `json:"family_code"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar"`
	Status     string    `json:"status"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Birthday   string    `json:"birthday,omitempty"` // YYYY-MM-DD, optional
	Bio        string    `json:"bio,omitempty"`
	Email      string    `json:"email,omitempty"`
	ProfilePic *string   `json:"profile_pic,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
