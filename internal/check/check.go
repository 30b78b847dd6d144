// Package check runs one invocation of a health check and escalates what it
// finds. Nothing survives between runs.
package check

import (
	"context"

	"github.com/hamed0406/opscheck/internal/config"
	"github.com/hamed0406/opscheck/internal/domain"
)

// Escalator delivers an event to every notification channel.
type Escalator interface {
	Escalate(ctx context.Context, ev domain.EscalationEvent) error
}

// Alerting holds the payload fields shared by every event.
type Alerting struct {
	Priority   domain.Priority
	Tags       []string
	Entity     string
	Responders []domain.Responder
}

func AlertingFromConfig(cfg config.Config) (Alerting, error) {
	p, err := domain.ParsePriority(cfg.AlertPriority)
	if err != nil {
		return Alerting{}, err
	}
	return Alerting{
		Priority:   p,
		Tags:       cfg.AlertTags,
		Entity:     cfg.AlertEntity,
		Responders: cfg.Responders(),
	}, nil
}

func (a Alerting) event(message, description string) domain.EscalationEvent {
	return domain.EscalationEvent{
		Message:     message,
		Description: description,
		Priority:    a.Priority,
		Tags:        a.Tags,
		Entity:      a.Entity,
		Responders:  a.Responders,
	}
}

// Report lists what a run looked at and what it escalated.
type Report struct {
	Checked []string
	Failed  []string
}

func (r Report) OK() bool { return len(r.Failed) == 0 }
