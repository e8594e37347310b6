package metrics

import (
	"encoding/json"
	"fmt"
)

// Key is the distinguished field inside a state update map under which the
// metrics Ledger travels through the host graph.
const Key = "__metrics__"

// maxErrorLen bounds the error text stored on a record.
const maxErrorLen = 500

// Record is one timed run of a node or proxied invocation. It is immutable
// once constructed; consumers copy it by value.
type Record struct {
	Agent      string `json:"agent"`
	RunID      string `json:"run_id"`
	OK         bool   `json:"ok"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Node       string `json:"node,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`

	// Extra carries caller-supplied fields merged in at finish time. They
	// are flattened alongside the fixed fields when encoding to JSON and
	// win on key collision.
	Extra map[string]any `json:"-"`
}

// recordKey identifies a record for deduplication during ledger merges.
type recordKey struct {
	runID      string
	startedAt  string
	durationMS int64
}

func (r Record) key() recordKey {
	return recordKey{runID: r.RunID, startedAt: r.StartedAt, durationMS: r.DurationMS}
}

// MarshalJSON flattens Extra into the top-level object.
func (r Record) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"agent":       r.Agent,
		"run_id":      r.RunID,
		"ok":          r.OK,
		"started_at":  r.StartedAt,
		"duration_ms": r.DurationMS,
	}
	if r.Node != "" {
		m["node"] = r.Node
	}
	if r.ErrorType != "" {
		m["error_type"] = r.ErrorType
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	for k, v := range r.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// truncateError bounds err's message and captures its concrete type name.
func truncateError(err error) (typ, msg string) {
	typ = fmt.Sprintf("%T", err)
	msg = err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return typ, msg
}
