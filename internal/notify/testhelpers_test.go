package notify

import (
	"context"
	"errors"

	"github.com/hamed0406/opscheck/internal/domain"
)

func sampleEvent() domain.EscalationEvent {
	return domain.EscalationEvent{
		Message:     `ALARM: "PM database snapshot is not updated on s3"`,
		Description: "postgres snapshot not updated on s3, last snapshot was updated at 2024-01-01T10:00:00Z.",
		Priority:    domain.P1,
		Tags:        []string{"PM Customer"},
		Entity:      "PackageMedia",
		Responders:  []domain.Responder{{Name: "24_7 MontelCare", Type: domain.ResponderTeam}},
	}
}

// recorder is a channel that records calls into a shared log.
type recorder struct {
	name string
	fail bool
	log  *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Notify(ctx context.Context, ev domain.EscalationEvent) error {
	*r.log = append(*r.log, r.name)
	if r.fail {
		return errors.New(r.name + " down")
	}
	return nil
}
