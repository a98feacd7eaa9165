package model

import "time"

// FamilyStats is the dashboard summary for a single family.
type FamilyStats struct {
	Members        int        `json:"members"`
	Announcements  int        `json:"announcements"`
	Messages       int        `json:"messages"`
	Photos         int        `json:"photos"`
	Polls          int        `json:"polls"`
	UpcomingEvents int        `json:"upcoming_events"`
	PendingTasks   int        `json:"pending_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
}

// Birthday flags a member whose next birthday is within the next 30 days.
type Birthday struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	DaysUntil int    `json:"days_until"`
}
