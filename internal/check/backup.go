package check

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/metrics"
	"github.com/hamed0406/opscheck/internal/probe"
	"github.com/hamed0406/opscheck/internal/storage"
)

const BackupAlarm = `ALARM: "PM database snapshot is not updated on s3"`

type Backup struct {
	Logger    *zap.Logger
	Lister    storage.Lister
	Escalator Escalator
	Alert     Alerting
	Metrics   *metrics.Recorder
	Now       func() time.Time
}

// Run checks that the newest object under the target prefix is recent
// enough. Listing errors are returned; a stale backup is escalated once and
// reported in Report.Failed.
func (b *Backup) Run(ctx context.Context, target domain.BackupTarget) (Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("kind", string(target.Kind)), zap.String("prefix", target.Prefix))
	log.Info("backup_check_started", zap.Duration("max_staleness", target.MaxStaleness))

	now := time.Now().UTC()
	if b.Now != nil {
		now = b.Now().UTC()
	}

	v, err := probe.Freshness(now, target.MaxStaleness, b.Lister.ListObjects(ctx, target.Prefix))
	if err != nil {
		return Report{}, fmt.Errorf("check %s backups: %w", target.Kind, err)
	}
	b.Metrics.Backup(string(target.Kind), v.LastSeen, v.Stale)

	rep := Report{Checked: []string{string(target.Kind)}}
	if !v.Stale {
		log.Info("backup_up_to_date", zap.String("key", v.Key), zap.Time("last_modified", v.LastSeen))
		return rep, nil
	}

	log.Error("backup_stale_escalating",
		zap.Bool("found", v.Found),
		zap.String("key", v.Key),
		zap.Time("last_modified", v.LastSeen),
	)
	rep.Failed = append(rep.Failed, string(target.Kind))
	ev := b.Alert.event(BackupAlarm, backupDescription(target, v, now))
	if err := b.Escalator.Escalate(ctx, ev); err != nil {
		log.Warn("backup_escalation_incomplete", zap.Error(err))
	}
	return rep, nil
}

func backupDescription(target domain.BackupTarget, v probe.BackupVerdict, now time.Time) string {
	if !v.Found {
		return fmt.Sprintf("%s snapshot not updated on s3, no snapshot found under %s.", target.Kind, target.Prefix)
	}
	return fmt.Sprintf("%s snapshot not updated on s3, last snapshot was updated at %s (%s).",
		target.Kind, v.LastSeen.Format(time.RFC3339), humanize.RelTime(v.LastSeen, now, "ago", "from now"))
}
