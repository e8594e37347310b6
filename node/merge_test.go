package node

import (
	"testing"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/stretchr/testify/assert"
)

func TestMergeUpdatesSlicesConcatenate(t *testing.T) {
	into := core.State{"messages": []any{"a"}}
	MergeUpdates(into, core.State{"messages": []any{"b", "c"}})
	assert.Equal(t, []any{"a", "b", "c"}, into["messages"])
}

func TestMergeUpdatesTypedSlicesConcatenate(t *testing.T) {
	into := core.State{"tags": []string{"a"}}
	MergeUpdates(into, core.State{"tags": []string{"b"}})
	assert.Equal(t, []any{"a", "b"}, into["tags"])
}

func TestMergeUpdatesMapsShallowMerge(t *testing.T) {
	into := core.State{"meta": core.State{"a": 1, "b": 1}}
	MergeUpdates(into, core.State{"meta": core.State{"b": 2, "c": 3}})
	assert.Equal(t, core.State{"a": 1, "b": 2, "c": 3}, into["meta"])
}

func TestMergeUpdatesScalarReplaced(t *testing.T) {
	into := core.State{"x": 1}
	MergeUpdates(into, core.State{"x": "two"})
	assert.Equal(t, "two", into["x"])
}

func TestMergeUpdatesMismatchedKindsReplaced(t *testing.T) {
	into := core.State{"x": []any{"a"}}
	MergeUpdates(into, core.State{"x": 5})
	assert.Equal(t, 5, into["x"])
}

func TestMergeUpdatesNewKeysAdded(t *testing.T) {
	into := core.State{}
	MergeUpdates(into, core.State{"x": 1})
	assert.Equal(t, 1, into["x"])
}

func TestMergeUpdatesSkipsLedgerKey(t *testing.T) {
	into := core.State{}
	MergeUpdates(into, core.State{metrics.Key: metrics.Ledger{"A": {{RunID: "r1"}}}})
	assert.NotContains(t, into, metrics.Key)
}
