// Package agent bundles the per-agent instrumentation surface: BaseAgent
// carries the logical identity, the run timer, an optional language model
// resolved from a provider/model spec string and the action slot whose
// assignments are transparently wrapped for run-level timing. The package
// owns no scheduling; it produces timed node functions for an external
// graph engine to call.
package agent
