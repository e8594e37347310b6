package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/hupe1980/agentmetrics/tool"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// AgentSummary writes one row of aggregate stats per agent, agents in
// sorted order.
func AgentSummary(w io.Writer, ledger metrics.Ledger) {
	fmt.Fprintln(w, "\nAgent Timing Summary")
	tw := newTable(w)
	fmt.Fprintln(tw, "Agent\tCount\tErrors\tTotal (s)\tAvg (ms)\tP50 (ms)\tP95 (ms)\tMax (ms)")

	for _, agent := range ledger.Agents() {
		s := metrics.Summarize(ledger[agent])
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%d\t%d\t%d\t%d\n",
			agent, s.Count, s.Errors, float64(s.TotalMS)/1000.0, s.AvgMS, s.P50MS, s.P95MS, s.MaxMS)
	}

	tw.Flush()
}

// SlowestRuns writes the k slowest runs across all agents.
func SlowestRuns(w io.Writer, ledger metrics.Ledger, k int) {
	top := metrics.TopKSlowest(ledger, k)
	if len(top) == 0 {
		return
	}

	fmt.Fprintf(w, "\nTop %d Slowest Runs\n", len(top))
	tw := newTable(w)
	fmt.Fprintln(tw, "Agent\tDuration (ms)\tOK\tRun ID\tStarted (UTC)")

	for _, r := range top {
		ok := "ok"
		if !r.OK {
			ok = "err"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Agent, r.DurationMS, ok, r.RunID, r.StartedAt)
	}

	tw.Flush()
}

// NodeTimings writes the per-node rollup for one agent's records.
func NodeTimings(w io.Writer, agent string, records []metrics.Record, hideZeros bool) {
	fmt.Fprintf(w, "\n%s - Per-Node Timing\n", agent)
	tw := newTable(w)
	fmt.Fprintln(tw, "Node\tCount\tTotal (s)\tAvg (ms)\tMax (ms)")

	for _, row := range metrics.ByNode(records, hideZeros) {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\n",
			row.Node, row.Count, float64(row.TotalMS)/1000.0, row.AvgMS, row.MaxMS)
	}

	tw.Flush()
}

// ToolTimings writes the per-tool rollup of a flat tool log.
func ToolTimings(w io.Writer, stats []tool.Stats) {
	fmt.Fprintln(w, "\nPer-Tool Timing")
	tw := newTable(w)
	fmt.Fprintln(tw, "Tool\tCount\tTotal (s)\tAvg (ms)\tMax (ms)\tErrors")

	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.0f\t%.0f\t%d\n",
			s.Name, s.Count, s.TotalS, s.AvgMS, s.MaxMS, s.Errors)
	}

	tw.Flush()
}
