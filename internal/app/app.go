// Package app wires configuration, logging and the notification channels
// for the check binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/check"
	"github.com/hamed0406/opscheck/internal/config"
	"github.com/hamed0406/opscheck/internal/logging"
	"github.com/hamed0406/opscheck/internal/metrics"
	"github.com/hamed0406/opscheck/internal/notify"
)

const (
	ExitOK          = 0
	ExitFatal       = 1
	ExitCheckFailed = 2
)

// ErrCheckFailed marks a run that completed and escalated at least one target.
var ErrCheckFailed = errors.New("check failed")

// ExitCode maps the result of Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	default:
		return ExitFatal
	}
}

type Env struct {
	Config    config.Config
	Logger    *zap.Logger
	Escalator *notify.Escalator
	Alert     check.Alerting
	Metrics   *metrics.Recorder
	RunID     string
}

// Setup loads the configuration from the environment (and .env) and builds
// the shared collaborators.
func Setup() (*Env, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return NewEnv(cfg)
}

func NewEnv(cfg config.Config) (*Env, error) {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	alert, err := check.AlertingFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	esc := notify.NewEscalator(logger,
		notify.NewOpsgenie(cfg.GenieURL, cfg.GenieKey, cfg.HTTPTimeout, logger),
		notify.NewMailgun(cfg.MailgunAPI, cfg.MailgunDomain, cfg.MailgunKey, cfg.EmailFrom, cfg.Recipients, cfg.HTTPTimeout, logger),
		notify.NewSlack(cfg.SlackWebhook, cfg.HTTPTimeout),
	)

	var rec *metrics.Recorder
	if cfg.PushgatewayURL != "" {
		rec = metrics.New()
	}

	return &Env{
		Config:    cfg,
		Logger:    logger,
		Escalator: esc,
		Alert:     alert,
		Metrics:   rec,
		RunID:     runID,
	}, nil
}

// Run executes fn under the configured overall deadline, pushes metrics and
// turns a failing report into ErrCheckFailed.
func (e *Env) Run(ctx context.Context, job string, fn func(ctx context.Context) (check.Report, error)) error {
	defer func() { _ = e.Logger.Sync() }()

	if e.Config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Config.RunTimeout)
		defer cancel()
	}

	e.Logger.Info("run_started", zap.String("job", job), zap.Duration("timeout", e.Config.RunTimeout))
	rep, err := fn(ctx)
	if err != nil {
		e.Logger.Error("run_aborted", zap.String("job", job), zap.Error(err))
		return err
	}

	// the run deadline does not apply to reporting
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.Config.HTTPTimeout)
	defer cancel()
	if err := e.Metrics.Push(pushCtx, e.Config.PushgatewayURL, job, time.Now()); err != nil {
		e.Logger.Warn("metrics_push_failed", zap.Error(err))
	}

	e.Logger.Info("run_finished",
		zap.String("job", job),
		zap.Strings("checked", rep.Checked),
		zap.Strings("failed", rep.Failed),
	)
	if !rep.OK() {
		return fmt.Errorf("%w: %v", ErrCheckFailed, rep.Failed)
	}
	return nil
}
