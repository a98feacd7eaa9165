package model

import "time"

type Poll struct {
	ID         int64        `json:"id"`
	FamilyCode string       `json:"family_code"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	Creator    string       `json:"creator"`
	CreatedAt  time.Time    `json:"created_at"`
}

type PollOption struct {
	Text   string   `json:"text"`
	Voters []string `json:"voters"`
}

// TotalVotes sums the voter counts across all options. A voter appearing
// under multiple options is counted once per option.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += len(opt.Voters)
	}
	return total
}

// Percentage returns the share of total votes held by the named option,
// or 0 when the poll has no votes at all.
func (p *Poll) Percentage(option string) float64 {
	total := p.TotalVotes()
	if total == 0 {
		return 0
	}
	for _, opt := range p.Options {
		if opt.Text == option {
			return float64(len(opt.Voters)) / float64(total) * 100
		}
	}
	return 0
}
