// Package metrics records the outcome of a run and pushes it to a Prometheus
// Pushgateway.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder is safe to use as a nil pointer, in which case it records nothing.
type Recorder struct {
	reg          *prometheus.Registry
	lastSnapshot *prometheus.GaugeVec
	checkFailed  *prometheus.GaugeVec
	dnsAttempts  *prometheus.GaugeVec
	lastRun      prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		lastSnapshot: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "opscheck_backup_last_snapshot_timestamp_seconds",
			Help: "Modification time of the newest backup object, 0 when none was found.",
		}, []string{"kind"}),
		checkFailed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "opscheck_check_failed",
			Help: "1 when the last run escalated the target, 0 otherwise.",
		}, []string{"check", "target"}),
		dnsAttempts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "opscheck_dns_resolution_attempts",
			Help: "Resolver calls made for the host during the last run.",
		}, []string{"host"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "opscheck_last_run_timestamp_seconds",
			Help: "End of the last completed run.",
		}),
	}
	r.reg.MustRegister(r.lastSnapshot, r.checkFailed, r.dnsAttempts, r.lastRun)
	return r
}

func (r *Recorder) Backup(kind string, lastSeen time.Time, stale bool) {
	if r == nil {
		return
	}
	ts := 0.0
	if !lastSeen.IsZero() {
		ts = float64(lastSeen.Unix())
	}
	r.lastSnapshot.WithLabelValues(kind).Set(ts)
	r.checkFailed.WithLabelValues("backup", kind).Set(boolGauge(stale))
}

func (r *Recorder) DNS(host string, attempts int, resolved bool) {
	if r == nil {
		return
	}
	r.dnsAttempts.WithLabelValues(host).Set(float64(attempts))
	r.checkFailed.WithLabelValues("dns", host).Set(boolGauge(!resolved))
}

// Push replaces the metrics of job on the gateway at url.
func (r *Recorder) Push(ctx context.Context, url, job string, now time.Time) error {
	if r == nil || url == "" {
		return nil
	}
	r.lastRun.Set(float64(now.Unix()))
	return push.New(url, job).Gatherer(r.reg).PushContext(ctx)
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
