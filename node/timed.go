package node

import (
	"context"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
)

// Func is the node-call convention instrumented by this package: the host
// scheduler invokes it with the current graph state and consumes its raw
// return value.
type Func func(ctx context.Context, state core.State) (any, error)

// Timed returns a Func that brackets fn with timer: Start before the call,
// Finish after, and the resulting record folded into the return value via
// Normalize. If fn returns an error the record is still finished (ok=false,
// node=name) and the original error is returned unchanged; the record is
// then only reachable through the timer's Last side channel.
//
// Start/Finish pairs on one timer must not interleave, so a node wrapped
// with a shared timer must not run concurrently with other nodes of the
// same agent instance.
func Timed(timer *metrics.RunTimer, name string, fn Func) Func {
	return func(ctx context.Context, state core.State) (any, error) {
		timer.Start()

		ret, err := fn(ctx, state)
		if err != nil {
			timer.Finish(core.State{}, false, err, map[string]any{"node": name})
			return nil, err
		}

		return Normalize(timer, name, ret), nil
	}
}

// Normalize finishes the timer over ret, producing a value of the same
// shape family with one record injected under metrics.Key.
func Normalize(timer *metrics.RunTimer, name string, ret any) any {
	extra := map[string]any{"node": name}

	switch res := core.Classify(ret); res.Kind {
	case core.KindCommand:
		upd := cloneWithoutLedger(res.Command.Update)
		upd = timer.Finish(upd, true, nil, extra)
		out := res.Command.WithUpdate(upd)
		return &out

	case core.KindList:
		return normalizeList(timer, res.List, extra)

	case core.KindUpdate:
		delete(res.Update, metrics.Key)
		return timer.Finish(res.Update, true, nil, extra)

	default:
		// Timing is observed but has no attachment point on the payload.
		timer.Finish(core.State{}, true, nil, extra)
		return ret
	}
}

// normalizeList handles a list mixing plain messages with Commands. If any
// Command is present the whole list collapses into a single Command whose
// update carries the merged directive updates plus the message stream;
// otherwise the list becomes the "messages" value of a plain update map.
func normalizeList(timer *metrics.RunTimer, items []any, extra map[string]any) any {
	var msgs []any
	merged := core.State{}
	hasCmd := false

	for _, item := range items {
		cmd, ok := asCommand(item)
		if !ok {
			msgs = append(msgs, item)
			continue
		}
		hasCmd = true

		upd := cloneWithoutLedger(cmd.Update)
		if m, present := upd["messages"]; present {
			msgs = appendMessages(msgs, m)
			delete(upd, "messages")
		}
		MergeUpdates(merged, upd)
	}

	if msgs == nil {
		msgs = []any{}
	}

	if hasCmd {
		merged["messages"] = msgs
		delete(merged, metrics.Key)
		merged = timer.Finish(merged, true, nil, extra)
		return &core.Command{Update: merged}
	}

	updates := core.State{"messages": msgs}
	return timer.Finish(updates, true, nil, extra)
}

func asCommand(item any) (*core.Command, bool) {
	switch c := item.(type) {
	case *core.Command:
		return c, c != nil
	case core.Command:
		return &c, true
	default:
		return nil, false
	}
}

func appendMessages(msgs []any, v any) []any {
	if list, ok := v.([]any); ok {
		return append(msgs, list...)
	}
	return append(msgs, v)
}

func cloneWithoutLedger(upd core.State) core.State {
	out := make(core.State, len(upd))
	for k, v := range upd {
		if k == metrics.Key {
			continue
		}
		out[k] = v
	}
	return out
}
