// Package session provides a volatile, host-side accumulator for node
// update maps. The external graph engine owns routing and checkpointing;
// this store only demonstrates the sanctioned way to fold per-node
// results into session state: ledgers combine through metrics.Merge so
// fan-in branches with overlapping history never duplicate records, all
// other keys follow the generic update-merge rule.
package session
