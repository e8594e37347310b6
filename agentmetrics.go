// Package agentmetrics provides a high-level façade over the metrics,
// tool and report packages for the common end-of-session flow: pull the
// ledger out of a final state map and render the standard summary tables.
// Most applications interact with the library through the subpackages
// directly; this façade exists for quick smoke tests and examples.
package agentmetrics

import (
	"io"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/hupe1980/agentmetrics/report"
	"github.com/hupe1980/agentmetrics/tool"
)

// CollectMetrics returns the ledger embedded in a final state map,
// tolerating an absent or foreign-shaped ledger value.
func CollectMetrics(state core.State) metrics.Ledger {
	return metrics.FromState(state)
}

// RenderSessionSummary writes the agent timing summary, the top-K slowest
// runs and the per-node rollup of every agent found in the final state.
func RenderSessionSummary(w io.Writer, state core.State, topK int) {
	ledger := metrics.FromState(state)

	report.AgentSummary(w, ledger)
	report.SlowestRuns(w, ledger, topK)
	for _, agent := range ledger.Agents() {
		report.NodeTimings(w, agent, ledger[agent], false)
	}
}

// RenderToolSummary writes the per-tool rollup of the shared tool log.
func RenderToolSummary(w io.Writer) {
	report.ToolTimings(w, tool.Default.Summary())
}
