package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalFlattensExtra(t *testing.T) {
	r := Record{
		Agent:      "A",
		RunID:      "r1",
		OK:         true,
		StartedAt:  "2025-01-01T00:00:00Z",
		DurationMS: 12,
		Node:       "plan",
		Extra:      map[string]any{"attempt": 2},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "plan", m["node"])
	assert.Equal(t, float64(2), m["attempt"])
	assert.NotContains(t, m, "error")
	assert.NotContains(t, m, "error_type")
}

func TestRecordMarshalOmitsEmptyOptionals(t *testing.T) {
	data, err := json.Marshal(Record{Agent: "A", RunID: "r1", OK: true})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "node")
	assert.Contains(t, m, "duration_ms")
}
