package probe

import (
	"iter"
	"time"

	"github.com/hamed0406/opscheck/internal/domain"
)

// BackupVerdict is the outcome of a freshness evaluation.
type BackupVerdict struct {
	Stale    bool
	Found    bool      // at least one object was listed
	LastSeen time.Time // zero when nothing was found
	Key      string
}

// Freshness folds over every record and reports whether the newest one is older
// than now - maxStaleness. An empty listing counts as stale. Records sharing the
// newest timestamp are interchangeable; the first one seen is kept.
//
// An error yielded by records stops the fold and is returned as is.
func Freshness(now time.Time, maxStaleness time.Duration, records iter.Seq2[domain.ObjectRecord, error]) (BackupVerdict, error) {
	var (
		latest domain.ObjectRecord
		found  bool
	)
	for rec, err := range records {
		if err != nil {
			return BackupVerdict{}, err
		}
		if !found || latest.LastModified.Before(rec.LastModified) {
			latest = rec
			found = true
		}
	}

	cutoff := now.Add(-maxStaleness)
	return BackupVerdict{
		Stale:    !found || latest.LastModified.Before(cutoff),
		Found:    found,
		LastSeen: latest.LastModified.UTC(),
		Key:      latest.Key,
	}, nil
}
