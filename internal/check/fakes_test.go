package check

import (
	"context"
	"errors"
	"iter"

	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/probe"
)

type fakeLister struct {
	recs   []domain.ObjectRecord
	err    error
	prefix string
}

func (f *fakeLister) ListObjects(ctx context.Context, prefix string) iter.Seq2[domain.ObjectRecord, error] {
	f.prefix = prefix
	return func(yield func(domain.ObjectRecord, error) bool) {
		for _, r := range f.recs {
			if !yield(r, nil) {
				return
			}
		}
		if f.err != nil {
			yield(domain.ObjectRecord{}, f.err)
		}
	}
}

type fakeEscalator struct {
	events []domain.EscalationEvent
	err    error
}

func (f *fakeEscalator) Escalate(ctx context.Context, ev domain.EscalationEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

// scriptedResolver fails hosts listed in fail with a timeout and resolves
// the rest; hosts in fatal get a non-retryable error.
type scriptedResolver struct {
	fail  map[string]bool
	fatal map[string]bool
	order []string
}

var errNX = errors.New("NXDOMAIN")

func (s *scriptedResolver) Resolve(ctx context.Context, name string) (probe.Answer, error) {
	s.order = append(s.order, name)
	switch {
	case s.fatal[name]:
		return probe.Answer{}, errNX
	case s.fail[name]:
		return probe.Answer{}, &probe.ResolveError{Kind: probe.Timeout, Name: name}
	}
	return probe.Answer{Records: []string{name + ". 60 IN A 192.0.2.1"}}, nil
}

func testAlerting() Alerting {
	return Alerting{
		Priority:   domain.P1,
		Tags:       []string{"PM Customer"},
		Entity:     "PackageMedia",
		Responders: []domain.Responder{{Name: "24_7 MontelCare", Type: domain.ResponderTeam}},
	}
}
