package model

import "time"

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type Announcement struct {
	ID         int64               `json:"id"`
	FamilyCode string              `json:"family_code"`
	Author     string              `json:"author"`
	Role       string              `json:"role"`
	Content    string              `json:"content"`
	Priority   string              `json:"priority"`
	Reactions  map[string][]string `json:"reactions"`
	Comments   []Comment           `json:"comments"`
	CreatedAt  time.Time           `json:"created_at"`
}

type Comment struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}
