package model

import "time"

const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

type Task struct {
	ID         int64     `json:"id"`
	FamilyCode string    `json:"family_code"`
	Task       string    `json:"task"`
	AssignedTo string    `json:"assigned_to"`
	Status     string    `json:"status"`
	Due        string    `json:"due"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}
