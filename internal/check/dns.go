package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/metrics"
	"github.com/hamed0406/opscheck/internal/probe"
)

const DNSAlarm = `ALARM: "DNS issue on node"`

type DNS struct {
	Logger    *zap.Logger
	Retrier   *probe.Retrier
	Escalator Escalator
	Alert     Alerting
	Metrics   *metrics.Recorder
	NodeIP    string
}

// Run checks every host in order. Each unresolvable host is escalated on its
// own. A resolver error outside the retryable set ends the run and is
// returned together with the report so far.
func (d *DNS) Run(ctx context.Context, targets []domain.DNSTarget) (Report, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var rep Report
	for _, t := range targets {
		log := logger.With(zap.String("host", t.Hostname))
		log.Info("dns_checking")

		v, err := d.Retrier.Check(ctx, t.Hostname)
		if err != nil {
			return rep, fmt.Errorf("check %s: %w", t.Hostname, err)
		}
		rep.Checked = append(rep.Checked, t.Hostname)
		d.Metrics.DNS(t.Hostname, v.Attempts, v.Resolved)

		if v.Resolved {
			log.Info("dns_resolved", zap.Int("attempts", v.Attempts), zap.Strings("answer", v.Answer.Records))
			continue
		}

		log.Error("dns_unresolvable", zap.Int("attempts", v.Attempts), zap.Error(v.LastErr))
		rep.Failed = append(rep.Failed, t.Hostname)
		ev := d.Alert.event(DNSAlarm, dnsDescription(d.NodeIP, t.Hostname))
		if err := d.Escalator.Escalate(ctx, ev); err != nil {
			log.Warn("dns_escalation_incomplete", zap.Error(err))
		}
	}
	return rep, nil
}

func dnsDescription(nodeIP, host string) string {
	return fmt.Sprintf("Node cannot resolve DNS on node with IP: %s (unresolvable name: %s)", nodeIP, host)
}
