package metrics

import (
	"math"
	"sort"
)

// Stats is the aggregate rollup over a record list.
type Stats struct {
	Count   int   `json:"count"`
	Errors  int   `json:"errors"`
	TotalMS int64 `json:"total_ms"`
	AvgMS   int64 `json:"avg_ms"`
	P50MS   int64 `json:"p50_ms"`
	P95MS   int64 `json:"p95_ms"`
	MaxMS   int64 `json:"max_ms"`
}

// SlowRun is one entry in the global top-K slowest report.
type SlowRun struct {
	Agent      string `json:"agent"`
	DurationMS int64  `json:"duration_ms"`
	OK         bool   `json:"ok"`
	RunID      string `json:"run_id"`
	StartedAt  string `json:"started_at"`
}

// NodeStats is the per-node aggregate within a single agent's records.
type NodeStats struct {
	Node    string `json:"node"`
	Count   int    `json:"count"`
	TotalMS int64  `json:"total_ms"`
	AvgMS   int64  `json:"avg_ms"`
	MaxMS   int64  `json:"max_ms"`
}

// Summarize computes count, errors, total, integer-truncated average,
// nearest-rank percentiles and max duration over records. An empty input
// yields all-zero stats.
func Summarize(records []Record) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	durs := make([]int64, len(records))
	var errors int
	for i, r := range records {
		durs[i] = r.DurationMS
		if !r.OK {
			errors++
		}
	}
	sort.Slice(durs, func(i, j int) bool { return durs[i] < durs[j] })

	var total int64
	for _, d := range durs {
		total += d
	}
	n := len(durs)

	return Stats{
		Count:   n,
		Errors:  errors,
		TotalMS: total,
		AvgMS:   total / int64(n),
		P50MS:   nearestRank(durs, 0.50),
		P95MS:   nearestRank(durs, 0.95),
		MaxMS:   durs[n-1],
	}
}

// nearestRank selects an existing data point from the ascending-sorted
// durations: index = clamp(ceil(p*n)-1, 0, n-1).
func nearestRank(sorted []int64, p float64) int64 {
	n := len(sorted)
	k := int(math.Ceil(p*float64(n))) - 1
	if k < 0 {
		k = 0
	}
	if k > n-1 {
		k = n - 1
	}
	return sorted[k]
}

// TopKSlowest flattens all agents' records and returns the k slowest in
// descending duration order, fewer if the ledger holds fewer records.
// The sort is stable, so ties keep their flattened input order (agents
// visited in sorted order, per-agent completion order preserved).
func TopKSlowest(l Ledger, k int) []SlowRun {
	if k <= 0 {
		return nil
	}

	all := l.Flatten()
	runs := make([]SlowRun, len(all))
	for i, r := range all {
		runs[i] = SlowRun{
			Agent:      r.Agent,
			DurationMS: r.DurationMS,
			OK:         r.OK,
			RunID:      r.RunID,
			StartedAt:  r.StartedAt,
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].DurationMS > runs[j].DurationMS })

	if k > len(runs) {
		k = len(runs)
	}
	return runs[:k]
}

// ByNode groups records by their node field ("unknown" when absent) and
// aggregates each group, sorted descending by total duration. When
// hideZeros is set, zero-duration records are excluded before grouping.
func ByNode(records []Record, hideZeros bool) []NodeStats {
	groups := map[string]*NodeStats{}
	order := []string{}

	for _, r := range records {
		if hideZeros && r.DurationMS == 0 {
			continue
		}
		node := r.Node
		if node == "" {
			node = "unknown"
		}
		g, ok := groups[node]
		if !ok {
			g = &NodeStats{Node: node}
			groups[node] = g
			order = append(order, node)
		}
		g.Count++
		g.TotalMS += r.DurationMS
		if r.DurationMS > g.MaxMS {
			g.MaxMS = r.DurationMS
		}
	}

	out := make([]NodeStats, 0, len(order))
	for _, node := range order {
		g := groups[node]
		g.AvgMS = g.TotalMS / int64(g.Count)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalMS > out[j].TotalMS })

	return out
}
