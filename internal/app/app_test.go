package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/opscheck/internal/check"
	"github.com/hamed0406/opscheck/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.FromEnv()
	cfg.LogDir = ""
	cfg.HTTPTimeout = time.Second
	return cfg
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitCheckFailed, ExitCode(ErrCheckFailed))
	assert.Equal(t, ExitFatal, ExitCode(errors.New("boom")))
}

func TestNewEnv_WiresChannels(t *testing.T) {
	cfg := testConfig(t)
	cfg.SlackWebhook = "https://hooks.slack.com/services/x"

	env, err := NewEnv(cfg)
	require.NoError(t, err)
	require.Len(t, env.Escalator.Channels, 3)
	assert.Equal(t, "opsgenie", env.Escalator.Channels[0].Name())
	assert.Equal(t, "mailgun", env.Escalator.Channels[1].Name())
	assert.Equal(t, "slack", env.Escalator.Channels[2].Name())
	assert.Nil(t, env.Metrics)
	assert.NotEmpty(t, env.RunID)
}

func TestRun_ReportMapsToExitCode(t *testing.T) {
	env, err := NewEnv(testConfig(t))
	require.NoError(t, err)

	err = env.Run(context.Background(), "test", func(ctx context.Context) (check.Report, error) {
		return check.Report{Checked: []string{"a"}}, nil
	})
	assert.Equal(t, ExitOK, ExitCode(err))

	err = env.Run(context.Background(), "test", func(ctx context.Context) (check.Report, error) {
		return check.Report{Checked: []string{"a"}, Failed: []string{"a"}}, nil
	})
	assert.Equal(t, ExitCheckFailed, ExitCode(err))

	err = env.Run(context.Background(), "test", func(ctx context.Context) (check.Report, error) {
		return check.Report{}, errors.New("list failed")
	})
	assert.Equal(t, ExitFatal, ExitCode(err))
}

func TestRun_AppliesRunTimeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.RunTimeout = 20 * time.Millisecond
	env, err := NewEnv(cfg)
	require.NoError(t, err)

	err = env.Run(context.Background(), "test", func(ctx context.Context) (check.Report, error) {
		<-ctx.Done()
		return check.Report{}, ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_PushesMetrics(t *testing.T) {
	var pushes atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := testConfig(t)
	cfg.PushgatewayURL = ts.URL
	env, err := NewEnv(cfg)
	require.NoError(t, err)
	require.NotNil(t, env.Metrics)

	err = env.Run(context.Background(), "opscheck_dns", func(ctx context.Context) (check.Report, error) {
		env.Metrics.DNS("a.example", 1, true)
		return check.Report{Checked: []string{"a.example"}}, nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pushes.Load())
}
