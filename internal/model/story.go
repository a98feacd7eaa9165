package model

import "time"

// storyWindow is how long a story stays visible after posting.
const storyWindow = 24 * time.Hour

type Story struct {
	ID         int64     `json:"id"`
	FamilyCode string    `json:"family_code"`
	Author     string    `json:"author"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Active reports whether the story is still within its 24-hour visibility
// window at now. Expired stories stay in storage; visibility is computed
// at read time.
func (s *Story) Active(now time.Time) bool {
	return now.Sub(s.CreatedAt) < storyWindow
}
