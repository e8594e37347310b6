package agent

import (
	"context"
	"time"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/logging"
	"github.com/hupe1980/agentmetrics/metrics"
)

// ActionProxy decorates an Invoker so every invocation records one
// run-level metric into the invocation's own result. Only the Invoke
// capability is intercepted; access to the underlying action goes through
// Unwrap. Instrumentation must never break the wrapped call's contract:
// any failure while attaching the metric is swallowed and surfaced only
// on the diagnostic logger.
type ActionProxy struct {
	owner  string
	inner  core.Invoker
	logger logging.Logger
}

// NewActionProxy wraps inner so results attributed to owner carry a
// run-level metric. A nil logger falls back to NoOpLogger.
func NewActionProxy(owner string, inner core.Invoker, logger logging.Logger) *ActionProxy {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ActionProxy{owner: owner, inner: inner, logger: logger}
}

// Unwrap returns the wrapped action for callers that need its full API.
func (p *ActionProxy) Unwrap() core.Invoker { return p.inner }

// Invoke calls through to the wrapped action. If the result is a state
// map, one record (node "run") is appended to the owner's ledger bucket
// in that map, on success and failure alike. A non-map result records
// nothing; timing for such calls is lost. Call errors propagate after the
// best-effort bookkeeping.
func (p *ActionProxy) Invoke(ctx context.Context, state core.State) (any, error) {
	t0 := time.Now()
	wall := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := p.inner.Invoke(ctx, state)
	p.record(res, err == nil, t0, wall)

	return res, err
}

func (p *ActionProxy) record(res any, ok bool, t0 time.Time, wall string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("action metric bookkeeping failed", "agent", p.owner, "panic", r)
		}
	}()

	updates, isMap := res.(core.State)
	if !isMap {
		return
	}

	durationMS := time.Since(t0).Milliseconds()
	if durationMS < 0 {
		durationMS = 0
	}

	metrics.Inject(updates, p.owner, metrics.Record{
		Agent:      p.owner,
		RunID:      core.NewID(),
		OK:         ok,
		StartedAt:  wall,
		DurationMS: durationMS,
		Node:       "run",
	})
}
