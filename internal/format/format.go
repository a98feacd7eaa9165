// Package format holds the presentation helpers shared by handlers: relative
// timestamps and the role accent colors.
package format

import (
	"fmt"
	"time"

	"hearthside/internal/model"
)

var roleColors = map[string]string{
	model.RoleFather:      "#3b82f6",
	model.RoleMother:      "#ec4899",
	model.RoleSon:         "#10b981",
	model.RoleDaughter:    "#a855f7",
	model.RoleGrandparent: "#f59e0b",
	model.RoleOther:       "#6b7280",
}

// RoleColor maps a family role to its accent color. Unknown roles get the
// Other color.
func RoleColor(role string) string {
	if c, ok := roleColors[role]; ok {
		return c
	}
	return roleColors[model.RoleOther]
}

// RelativeTime renders t relative to now: "Just now" under a minute, then
// minutes, then hours, then an absolute date past a day.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 02, 3:04 PM")
	}
}
