package metrics

import (
	"time"

	"github.com/hupe1980/agentmetrics/core"
)

// RunTimer is the per-agent-instance timing context. It is a single-slot
// state machine: idle until Start populates the run id and start instants,
// then reset to idle by Finish. At most one run may be in flight per
// instance; a nested Start silently overwrites the previous context and
// any timing for the abandoned run is lost. Concurrent runs for the same
// logical agent require one RunTimer per run.
//
// RunTimer is not safe for concurrent use; the non-interleaving of
// Start/Finish pairs is the caller's responsibility.
type RunTimer struct {
	agent     string
	runID     string
	monoStart time.Time
	wallStart string
	last      *Record
}

// NewRunTimer creates an idle timer owned by the given logical agent.
func NewRunTimer(agent string) *RunTimer {
	return &RunTimer{agent: agent}
}

// Agent returns the logical agent identifier records are attributed to.
func (t *RunTimer) Agent() string { return t.agent }

// Running reports whether a run is currently in flight.
func (t *RunTimer) Running() bool { return !t.monoStart.IsZero() }

// Start begins a new run: a fresh run id, a monotonic start instant and a
// wall-clock ISO-8601 UTC start timestamp.
func (t *RunTimer) Start() {
	t.runID = core.NewID()
	t.monoStart = time.Now()
	t.wallStart = time.Now().UTC().Format(time.RFC3339Nano)
}

// Finish ends the current run and injects the resulting Record into
// updates under Key, appending to this agent's bucket (creating it if
// absent). A nil updates map is allocated. If Start was never called the
// duration defaults to zero. err, when non-nil, populates the truncated
// error fields. extra entries are merged last, so callers can override
// the node name. The timer is reset to idle before returning.
func (t *RunTimer) Finish(updates core.State, ok bool, err error, extra map[string]any) core.State {
	rec := t.buildRecord(ok, err, extra)

	// Clear per-run fields to avoid accidental reuse.
	t.runID = ""
	t.monoStart = time.Time{}
	t.wallStart = ""
	t.last = &rec

	return Inject(updates, t.agent, rec)
}

// Last returns the most recently finished record. It is the side channel
// for runs whose record has no attachment point, such as a node that
// failed before returning a payload.
func (t *RunTimer) Last() (Record, bool) {
	if t.last == nil {
		return Record{}, false
	}
	return *t.last, true
}

func (t *RunTimer) buildRecord(ok bool, err error, extra map[string]any) Record {
	var durationMS int64
	if !t.monoStart.IsZero() {
		durationMS = time.Since(t.monoStart).Milliseconds()
		if durationMS < 0 {
			durationMS = 0
		}
	}

	rec := Record{
		Agent:      t.agent,
		RunID:      t.runID,
		OK:         ok,
		StartedAt:  t.wallStart,
		DurationMS: durationMS,
	}
	if err != nil {
		rec.ErrorType, rec.Error = truncateError(err)
	}
	for k, v := range extra {
		if k == "node" {
			if node, isString := v.(string); isString {
				rec.Node = node
				continue
			}
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any, len(extra))
		}
		rec.Extra[k] = v
	}

	return rec
}

// Inject appends rec to agent's bucket in the ledger carried by updates,
// tolerating foreign ledger shapes left by other producers. A nil updates
// map is allocated.
func Inject(updates core.State, agent string, rec Record) core.State {
	if updates == nil {
		updates = core.State{}
	}

	var ledger Ledger
	switch v := updates[Key].(type) {
	case nil:
		ledger = Ledger{}
	case Ledger:
		ledger = v
	default:
		ledger = CoerceLedger(v)
	}

	ledger[agent] = append(ledger[agent], rec)
	updates[Key] = ledger

	return updates
}
