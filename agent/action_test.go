package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionProxyRecordsIntoMapResult(t *testing.T) {
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return core.State{"result": "ok"}, nil
	})

	proxy := NewActionProxy("researcher", inner, nil)
	res, err := proxy.Invoke(context.Background(), core.State{})
	require.NoError(t, err)

	updates := res.(core.State)
	assert.Equal(t, "ok", updates["result"])

	runs := metrics.FromState(updates)["researcher"]
	require.Len(t, runs, 1)
	assert.Equal(t, "run", runs[0].Node)
	assert.True(t, runs[0].OK)
	assert.NotEmpty(t, runs[0].RunID)
	assert.GreaterOrEqual(t, runs[0].DurationMS, int64(0))
}

func TestActionProxyNonMapResultUnchanged(t *testing.T) {
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return "plain string", nil
	})

	proxy := NewActionProxy("researcher", inner, nil)
	res, err := proxy.Invoke(context.Background(), core.State{})
	require.NoError(t, err)
	assert.Equal(t, "plain string", res)
}

func TestActionProxyErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return nil, boom
	})

	proxy := NewActionProxy("researcher", inner, nil)
	_, err := proxy.Invoke(context.Background(), core.State{})
	assert.Same(t, boom, err)
}

func TestActionProxyErrorWithMapResultStillRecorded(t *testing.T) {
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return core.State{"partial": true}, errors.New("late failure")
	})

	proxy := NewActionProxy("researcher", inner, nil)
	res, err := proxy.Invoke(context.Background(), core.State{})
	require.Error(t, err)

	runs := metrics.FromState(res.(core.State))["researcher"]
	require.Len(t, runs, 1)
	assert.False(t, runs[0].OK)
}

func TestSetActionWrapsOnce(t *testing.T) {
	a := New("researcher", nil)
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return core.State{}, nil
	})

	a.SetAction(inner)
	proxy, ok := a.Action().(*ActionProxy)
	require.True(t, ok, "assigned actions must be wrapped")

	a.SetAction(proxy)
	assert.Same(t, proxy, a.Action(), "re-assigning a proxy must not double wrap")
}

func TestActionProxyUnwrap(t *testing.T) {
	inner := core.InvokerFunc(func(ctx context.Context, state core.State) (any, error) {
		return nil, nil
	})
	proxy := NewActionProxy("researcher", inner, nil)
	assert.NotNil(t, proxy.Unwrap())
}
