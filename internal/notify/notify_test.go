package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEscalator_CallsChannelsInOrder(t *testing.T) {
	var calls []string
	e := NewEscalator(zap.NewNop(),
		&recorder{name: "opsgenie", log: &calls},
		&recorder{name: "mailgun", log: &calls},
	)

	require.NoError(t, e.Escalate(context.Background(), sampleEvent()))
	assert.Equal(t, []string{"opsgenie", "mailgun"}, calls)
}

func TestEscalator_FirstFailureDoesNotShortCircuit(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var calls []string
	e := NewEscalator(zap.New(core),
		&recorder{name: "opsgenie", fail: true, log: &calls},
		&recorder{name: "mailgun", log: &calls},
	)

	err := e.Escalate(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Equal(t, []string{"opsgenie", "mailgun"}, calls)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Equal(t, 1, logs.FilterMessage("escalation_channel_failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("escalation_channel_sent").Len())
}

func TestEscalator_CombinesAllFailures(t *testing.T) {
	var calls []string
	e := NewEscalator(nil,
		&recorder{name: "opsgenie", fail: true, log: &calls},
		&recorder{name: "mailgun", fail: true, log: &calls},
	)

	err := e.Escalate(context.Background(), sampleEvent())
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "opsgenie: opsgenie down")
	assert.Contains(t, err.Error(), "mailgun: mailgun down")
}

func TestNewEscalator_SkipsDisabledSlack(t *testing.T) {
	var calls []string
	e := NewEscalator(nil, &recorder{name: "opsgenie", log: &calls}, NewSlack("", 0), nil)
	assert.Len(t, e.Channels, 1)
}
