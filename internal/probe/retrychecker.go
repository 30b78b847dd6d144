package probe

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	DefaultRetries       = 3
	DefaultRetryInterval = 60 * time.Second
)

// DNSVerdict is the outcome of checking one hostname.
type DNSVerdict struct {
	Host     string
	Resolved bool
	Attempts int
	Answer   Answer
	LastErr  error // last retryable error when Resolved is false
}

// Retrier resolves a hostname once and, on a retryable failure, up to Retries
// more times with a fixed Interval in between.
type Retrier struct {
	Resolver Resolver
	Retries  int
	Interval time.Duration
	Logger   *zap.Logger
}

func NewRetrier(r Resolver, interval time.Duration, logger *zap.Logger) *Retrier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrier{
		Resolver: r,
		Retries:  DefaultRetries,
		Interval: interval,
		Logger:   logger,
	}
}

// Check returns an error only for failures outside the retryable set, or when
// ctx ends while waiting. Exhausting the retries is a verdict, not an error.
func (r *Retrier) Check(ctx context.Context, host string) (DNSVerdict, error) {
	retries := r.Retries
	if retries < 0 {
		retries = 0
	}
	v := DNSVerdict{Host: host}

	op := func() (Answer, error) {
		v.Attempts++
		ans, err := r.Resolver.Resolve(ctx, host)
		if err == nil {
			return ans, nil
		}
		if !IsRetryable(err) {
			return Answer{}, backoff.Permanent(err)
		}
		v.LastErr = err
		return Answer{}, err
	}

	ans, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(r.Interval)),
		backoff.WithMaxTries(uint(retries)+1),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.Logger.Info("dns_retry_scheduled",
				zap.String("host", host),
				zap.Int("attempt", v.Attempts),
				zap.Duration("wait", next),
				zap.Error(err),
			)
		}),
	)
	switch {
	case err == nil:
		v.Resolved = true
		v.Answer = ans
		return v, nil
	case IsRetryable(err):
		return v, nil
	default:
		return v, err
	}
}
