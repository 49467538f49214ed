package model

import (
	jsoniter "github.com/json-iterator/go"
)

const (
	BucketTickets = "tickets"
	BucketIntake  = "intake"
)

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Ticket is one user's in-flight request. At most one open ticket may exist
// per user at any time; the ID distinguishes records whose content happens to
// coincide.
type Ticket struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	CreatedAt int64             `json:"created_at"`
	Status    TicketStatus      `json:"status"`
	Answers   map[string]Answer `json:"answers"`
}

// Answer is either free text or an ordered list of chosen options. It
// round-trips through JSON as a bare string or an array respectively.
type Answer struct {
	Text    string
	Choices []string
}

func TextAnswer(text string) Answer {
	return Answer{Text: text}
}

func ChoiceAnswer(choices []string) Answer {
	if choices == nil {
		choices = []string{}
	}
	return Answer{Choices: choices}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Choices != nil {
		return jsoniter.Marshal(a.Choices)
	}
	return jsoniter.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		a.Text = ""
		a.Choices = []string{}
		return jsoniter.Unmarshal(b, &a.Choices)
	}
	a.Choices = nil
	return jsoniter.Unmarshal(b, &a.Text)
}
