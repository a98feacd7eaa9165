package model

import "time"

type Message struct {
	ID         int64               `json:"id"`
	FamilyCode string              `json:"family_code"`
	Author     string              `json:"author"`
	Role       string              `json:"role"`
	Content    string              `json:"content"`
	Reactions  map[string][]string `json:"reactions"`
	CreatedAt  time.Time           `json:"created_at"`
}
