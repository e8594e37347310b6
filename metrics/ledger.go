package metrics

import (
	"sort"

	"github.com/hupe1980/agentmetrics/core"
)

// Ledger maps an agent identifier to the ordered list of records it
// produced. Order within an agent is completion order; no order across
// agents is guaranteed.
type Ledger map[string][]Record

// Merge combines two ledgers without duplicating records: for each agent
// present in either, curr's records are kept in order followed by any
// delta records not already present. Presence is determined by the
// (run_id, started_at, duration_ms) key, making Merge idempotent under
// repeated merges of overlapping fan-out branches. Neither input is
// mutated.
func Merge(curr, delta Ledger) Ledger {
	out := make(Ledger, len(curr)+len(delta))
	for agent, runs := range curr {
		out[agent] = append([]Record(nil), runs...)
	}

	for agent, runs := range delta {
		dest := out[agent]
		seen := make(map[recordKey]struct{}, len(dest))
		for _, r := range dest {
			seen[r.key()] = struct{}{}
		}
		for _, r := range runs {
			if _, dup := seen[r.key()]; dup {
				continue
			}
			dest = append(dest, r)
			seen[r.key()] = struct{}{}
		}
		out[agent] = dest
	}

	return out
}

// FromState extracts the ledger embedded in a state map, tolerating an
// absent key and foreign value shapes (for example after a JSON round
// trip). A missing or unusable value yields an empty ledger.
func FromState(state core.State) Ledger {
	if state == nil {
		return Ledger{}
	}
	return CoerceLedger(state[Key])
}

// CoerceLedger converts an arbitrary ledger-shaped value into a Ledger.
// Individual records with missing fields are defaulted rather than
// rejected so a single malformed entry never fails a whole report.
func CoerceLedger(v any) Ledger {
	switch l := v.(type) {
	case nil:
		return Ledger{}
	case Ledger:
		return l
	case map[string][]Record:
		return Ledger(l)
	case map[string]any:
		out := make(Ledger, len(l))
		for agent, runs := range l {
			out[agent] = coerceRecords(runs)
		}
		return out
	default:
		return Ledger{}
	}
}

// Agents returns the agent identifiers in sorted order, giving reports a
// deterministic iteration order over the unordered map.
func (l Ledger) Agents() []string {
	agents := make([]string, 0, len(l))
	for agent := range l {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return agents
}

// Flatten returns all records across agents, agents visited in sorted
// order, per-agent order preserved.
func (l Ledger) Flatten() []Record {
	var out []Record
	for _, agent := range l.Agents() {
		out = append(out, l[agent]...)
	}
	return out
}

func coerceRecords(v any) []Record {
	switch runs := v.(type) {
	case []Record:
		return runs
	case []any:
		out := make([]Record, 0, len(runs))
		for _, item := range runs {
			switch r := item.(type) {
			case Record:
				out = append(out, r)
			case map[string]any:
				out = append(out, recordFromMap(r))
			}
		}
		return out
	default:
		return nil
	}
}

// recordFromMap rebuilds a Record from a loose map, defaulting missing
// fields (ok defaults to true, duration to zero).
func recordFromMap(m map[string]any) Record {
	rec := Record{
		Agent:      asString(m["agent"]),
		RunID:      asString(m["run_id"]),
		OK:         true,
		StartedAt:  asString(m["started_at"]),
		DurationMS: asInt64(m["duration_ms"]),
		Node:       asString(m["node"]),
		ErrorType:  asString(m["error_type"]),
		Error:      asString(m["error"]),
	}
	if ok, isBool := m["ok"].(bool); isBool {
		rec.OK = ok
	}
	return rec
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
