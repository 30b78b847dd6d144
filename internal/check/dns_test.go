package check

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/probe"
)

func newDNS(res probe.Resolver, esc Escalator) *DNS {
	return &DNS{
		Logger:    zap.NewNop(),
		Retrier:   probe.NewRetrier(res, 0, nil),
		Escalator: esc,
		Alert:     testAlerting(),
		NodeIP:    "10.1.2.3",
	}
}

func TestDNS_FailingHostDoesNotAffectNext(t *testing.T) {
	res := &scriptedResolver{fail: map[string]bool{"a.example": true}}
	esc := &fakeEscalator{}

	rep, err := newDNS(res, esc).Run(context.Background(), domain.ParseDNSTargets("a.example,b.example"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.example", "b.example"}, rep.Checked)
	assert.Equal(t, []string{"a.example"}, rep.Failed)
	assert.Equal(t, []string{"a.example", "a.example", "a.example", "a.example", "b.example"}, res.order)

	require.Len(t, esc.events, 1)
	assert.Equal(t, DNSAlarm, esc.events[0].Message)
	assert.Contains(t, esc.events[0].Description, "Node cannot resolve DNS on node with IP: 10.1.2.3")
	assert.Contains(t, esc.events[0].Description, "a.example")
}

func TestDNS_AllResolve(t *testing.T) {
	esc := &fakeEscalator{}
	rep, err := newDNS(&scriptedResolver{}, esc).Run(context.Background(), domain.ParseDNSTargets("a.example,b.example"))
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Empty(t, esc.events)
}

func TestDNS_EachFailureEscalatedSeparately(t *testing.T) {
	res := &scriptedResolver{fail: map[string]bool{"a.example": true, "c.example": true}}
	esc := &fakeEscalator{}

	rep, err := newDNS(res, esc).Run(context.Background(), domain.ParseDNSTargets("a.example,b.example,c.example"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example", "c.example"}, rep.Failed)
	assert.Len(t, esc.events, 2)
}

func TestDNS_NonRetryableErrorStopsRun(t *testing.T) {
	res := &scriptedResolver{fatal: map[string]bool{"gone.example": true}}
	esc := &fakeEscalator{}

	rep, err := newDNS(res, esc).Run(context.Background(), domain.ParseDNSTargets("ok.example,gone.example,later.example"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNX))
	assert.Equal(t, []string{"ok.example"}, rep.Checked)
	assert.NotContains(t, res.order, "later.example")
	assert.Empty(t, esc.events)
}
