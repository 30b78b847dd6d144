package domain

import "fmt"

type Priority string

const (
	P1 Priority = "P1"
	P2 Priority = "P2"
	P3 Priority = "P3"
	P4 Priority = "P4"
	P5 Priority = "P5"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case P1, P2, P3, P4, P5:
		return p, nil
	}
	return "", fmt.Errorf("unknown alert priority %q", s)
}

type ResponderType string

const ResponderTeam ResponderType = "team"

type Responder struct {
	Name string        `json:"name"`
	Type ResponderType `json:"type"`
}

// EscalationEvent is built once per failing check and handed to every
// notification channel.
type EscalationEvent struct {
	Message     string      `json:"message"`
	Description string      `json:"description"`
	Priority    Priority    `json:"priority"`
	Tags        []string    `json:"tags"`
	Entity      string      `json:"entity"`
	Responders  []Responder `json:"responders"`
}
