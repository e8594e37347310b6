package session

import (
	"sync"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/hupe1980/agentmetrics/node"
)

// InMemoryStore accumulates session state in a process-local map. It is
// safe for concurrent access. Snapshots are shallow copies; callers must
// not mutate nested values they did not put there.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string]core.State
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{states: make(map[string]core.State)}
}

// Apply folds a node's update map into the session's state. The metrics
// ledger is combined via metrics.Merge (idempotent under overlapping
// fan-out history); every other key follows the generic merge rule.
func (s *InMemoryStore) Apply(sessionID string, update core.State) {
	if update == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	curr, ok := s.states[sessionID]
	if !ok {
		curr = core.State{}
		s.states[sessionID] = curr
	}

	merged := metrics.Merge(metrics.FromState(curr), metrics.FromState(update))
	node.MergeUpdates(curr, update)
	if len(merged) > 0 {
		curr[metrics.Key] = merged
	}
}

// Get returns a shallow snapshot of the session's state, or an empty map
// for an unknown session.
func (s *InMemoryStore) Get(sessionID string) core.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	curr, ok := s.states[sessionID]
	if !ok {
		return core.State{}
	}

	out := make(core.State, len(curr))
	for k, v := range curr {
		out[k] = v
	}
	return out
}

// Ledger returns the accumulated metrics ledger for the session.
func (s *InMemoryStore) Ledger(sessionID string) metrics.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return metrics.FromState(s.states[sessionID])
}

// Reset discards the session's state.
func (s *InMemoryStore) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
}
