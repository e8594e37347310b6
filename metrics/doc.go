// Package metrics implements per-run timing capture for agent graph nodes:
// the canonical Record type, the single-slot RunTimer that brackets one run
// per agent instance, the Ledger accumulated inside state updates under the
// Key field, the idempotent Merge used when fan-out branches join, and the
// statistical Summarize / TopKSlowest / ByNode rollups.
//
// The package performs no scheduling and holds no global state. Records are
// immutable once built; ledgers embedded in a node's output are owned by
// whichever consumer merges them, and Merge is the only sanctioned way to
// combine ledgers from concurrent branches.
package metrics
