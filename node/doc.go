// Package node wraps graph node functions with run timing. Timed brackets
// a node's execution with a metrics.RunTimer and normalizes whatever shape
// the node returns — plain update map, control directive, heterogeneous
// list or anything else — into the same shape family with exactly one
// metric record injected under metrics.Key. Every other field and the
// node's own success/failure semantics are preserved untouched.
package node
