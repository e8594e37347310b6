// Package logging provides a tiny abstraction over slog so the rest of the
// module can depend on a minimal Logger interface while callers plug in any
// structured logger. It also offers an AgentLogger with contextual helpers
// (agent, run, component) and domain specific helpers for node runs and
// tool timings, plus optional rotating file output.
package logging
