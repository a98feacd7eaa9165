package model

import "time"

type Session struct {
	ID         int64     `json:"id"`
	Token      string    `json:"token"`
	FamilyCode string    `json:"family_code"`
	Username   string    `json:"username"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}
