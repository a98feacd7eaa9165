package model

import "time"

type Event struct {
	ID         int64     `json:"id"`
	FamilyCode string    `json:"family_code"`
	Title      string    `json:"title"`
	Date       string    `json:"date"` // normalized YYYY-MM-DD
	Time       string    `json:"time"`
	Location   string    `json:"location"`
	Creator    string    `json:"creator"`
	Attendees  []string  `json:"attendees"`
	CreatedAt  time.Time `json:"created_at"`
}

// OccursOn reports whether the event falls on the calendar day of now.
func (e *Event) OccursOn(now time.Time) bool {
	return e.Date == now.Format("2006-01-02")
}
