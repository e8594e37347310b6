package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTimed(t *testing.T, timer *metrics.RunTimer, name string, fn Func) any {
	t.Helper()
	ret, err := Timed(timer, name, fn)(context.Background(), core.State{})
	require.NoError(t, err)
	return ret
}

func TestTimedPlainUpdate(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "plan", func(ctx context.Context, state core.State) (any, error) {
		return core.State{"answer": 42}, nil
	})

	updates, ok := ret.(core.State)
	require.True(t, ok)
	assert.Equal(t, 42, updates["answer"])

	runs := metrics.FromState(updates)["agent"]
	require.Len(t, runs, 1)
	assert.Equal(t, "plan", runs[0].Node)
	assert.True(t, runs[0].OK)
	assert.GreaterOrEqual(t, runs[0].DurationMS, int64(0))
}

func TestTimedStripsStaleLedger(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "plan", func(ctx context.Context, state core.State) (any, error) {
		return core.State{metrics.Key: metrics.Ledger{"agent": {{RunID: "stale"}}}}, nil
	})

	runs := metrics.FromState(ret.(core.State))["agent"]
	require.Len(t, runs, 1, "pre-existing ledger must be stripped before injection")
	assert.NotEqual(t, "stale", runs[0].RunID)
}

func TestTimedCommandPreservesRouting(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "route", func(ctx context.Context, state core.State) (any, error) {
		return &core.Command{
			Update:    core.State{"x": 1},
			Goto:      "reviewer",
			Graph:     "parent",
			Interrupt: "ask user",
			Sleep:     time.Second,
		}, nil
	})

	cmd, ok := ret.(*core.Command)
	require.True(t, ok)
	assert.Equal(t, "reviewer", cmd.Goto)
	assert.Equal(t, "parent", cmd.Graph)
	assert.Equal(t, "ask user", cmd.Interrupt)
	assert.Equal(t, time.Second, cmd.Sleep)
	assert.Equal(t, 1, cmd.Update["x"])

	runs := metrics.FromState(cmd.Update)["agent"]
	require.Len(t, runs, 1)
	assert.Equal(t, "route", runs[0].Node)
}

func TestTimedCommandWithNilUpdate(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "route", func(ctx context.Context, state core.State) (any, error) {
		return &core.Command{Goto: "next"}, nil
	})

	cmd := ret.(*core.Command)
	assert.Equal(t, "next", cmd.Goto)
	require.Len(t, metrics.FromState(cmd.Update)["agent"], 1)
}

func TestTimedCommandDoesNotMutateOriginal(t *testing.T) {
	timer := metrics.NewRunTimer("agent")
	original := &core.Command{Update: core.State{"x": 1}}

	runTimed(t, timer, "route", func(ctx context.Context, state core.State) (any, error) {
		return original, nil
	})

	assert.NotContains(t, original.Update, metrics.Key)
}

func TestTimedHeterogeneousList(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "tools", func(ctx context.Context, state core.State) (any, error) {
		return []any{
			"m1",
			"m2",
			&core.Command{Update: core.State{"x": 1}},
		}, nil
	})

	cmd, ok := ret.(*core.Command)
	require.True(t, ok, "a list containing a directive collapses into one directive")
	assert.Equal(t, 1, cmd.Update["x"])
	assert.Equal(t, []any{"m1", "m2"}, cmd.Update["messages"])

	runs := metrics.FromState(cmd.Update)["agent"]
	require.Len(t, runs, 1)
	assert.Equal(t, "tools", runs[0].Node)
}

func TestTimedListCommandMessagesFolded(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "tools", func(ctx context.Context, state core.State) (any, error) {
		return []any{
			"m1",
			&core.Command{Update: core.State{"messages": []any{"cm1", "cm2"}, "y": 2}},
		}, nil
	})

	cmd := ret.(*core.Command)
	assert.Equal(t, []any{"m1", "cm1", "cm2"}, cmd.Update["messages"])
	assert.Equal(t, 2, cmd.Update["y"])
}

func TestTimedListDirectiveConflictLastWins(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "tools", func(ctx context.Context, state core.State) (any, error) {
		return []any{
			&core.Command{Update: core.State{"x": 1, "tags": []any{"a"}}},
			&core.Command{Update: core.State{"x": 2, "tags": []any{"b"}}},
		}, nil
	})

	cmd := ret.(*core.Command)
	assert.Equal(t, 2, cmd.Update["x"])
	assert.Equal(t, []any{"a", "b"}, cmd.Update["tags"])
}

func TestTimedMessageOnlyList(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "chat", func(ctx context.Context, state core.State) (any, error) {
		return []any{"m1", "m2"}, nil
	})

	updates, ok := ret.(core.State)
	require.True(t, ok, "a directive-free list becomes a plain update map")
	assert.Equal(t, []any{"m1", "m2"}, updates["messages"])
	require.Len(t, metrics.FromState(updates)["agent"], 1)
}

func TestTimedOpaqueReturnedUnchanged(t *testing.T) {
	timer := metrics.NewRunTimer("agent")

	ret := runTimed(t, timer, "raw", func(ctx context.Context, state core.State) (any, error) {
		return "just a string", nil
	})

	assert.Equal(t, "just a string", ret)

	// The record was still captured, observable via the side channel.
	rec, ok := timer.Last()
	require.True(t, ok)
	assert.Equal(t, "raw", rec.Node)
	assert.True(t, rec.OK)
}

func TestTimedErrorPropagatesUnchanged(t *testing.T) {
	timer := metrics.NewRunTimer("agent")
	boom := errors.New("boom")

	ret, err := Timed(timer, "explode", func(ctx context.Context, state core.State) (any, error) {
		return core.State{"partial": true}, boom
	})(context.Background(), core.State{})

	assert.Nil(t, ret, "partial return value is discarded on failure")
	assert.Same(t, boom, err)

	rec, ok := timer.Last()
	require.True(t, ok)
	assert.False(t, rec.OK)
	assert.Equal(t, "explode", rec.Node)
	assert.Equal(t, "*errors.errorString", rec.ErrorType)
	assert.False(t, timer.Running(), "timer must be idle after a failed run")
}
