package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
)

// Notifier delivers one escalation over one channel. A single attempt is
// made; failures are returned, never retried.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, ev domain.EscalationEvent) error
}

// Escalator hands an event to every channel in order. A failing channel does
// not stop the ones after it.
type Escalator struct {
	Channels []Notifier
	Logger   *zap.Logger
}

func NewEscalator(logger *zap.Logger, channels ...Notifier) *Escalator {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Escalator{Logger: logger}
	for _, c := range channels {
		if c != nil && !isNilNotifier(c) {
			e.Channels = append(e.Channels, c)
		}
	}
	return e
}

// Escalate returns the combined channel errors. They have already been
// logged; callers are expected to discard them.
func (e *Escalator) Escalate(ctx context.Context, ev domain.EscalationEvent) error {
	var errs error
	for _, c := range e.Channels {
		if err := c.Notify(ctx, ev); err != nil {
			e.Logger.Error("escalation_channel_failed",
				zap.String("channel", c.Name()),
				zap.String("message", ev.Message),
				zap.Error(err),
			)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		e.Logger.Info("escalation_channel_sent", zap.String("channel", c.Name()))
	}
	return errs
}

// isNilNotifier catches typed nils such as a disabled (*Slack)(nil).
func isNilNotifier(n Notifier) bool {
	s, ok := n.(*Slack)
	return ok && s == nil
}

// readLogged reads a response body for logging, capped at 4 KiB.
func readLogged(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return string(b)
}

func statusErr(channel string, resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return fmt.Errorf("%s non-2xx: %s", channel, resp.Status)
}
