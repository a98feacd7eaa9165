package model

import "time"

type Photo struct {
	ID         int64     `json:"id"`
	FamilyCode string    `json:"family_code"`
	ImageRef   string    `json:"image_ref"`
	Caption    string    `json:"caption"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
}
