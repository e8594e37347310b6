// Package tool provides a flat, process-wide timing log for free-standing
// callables, independent of the per-agent metrics ledger. Entries are
// simple (name, duration, outcome) tuples with no identity or dedup
// concept; the log lives for the lifetime of the process and is meant for
// ad-hoc reporting of tool and helper functions.
//
// The shared Default log is explicitly synchronized. Tests should use an
// isolated NewLog, or Reset/Drain the default for isolation.
package tool
