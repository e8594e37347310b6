package testutil

import (
	"time"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
)

// RecordBuilder assembles metric records with sensible defaults so tests
// only spell out the fields they care about.
type RecordBuilder struct {
	rec metrics.Record
}

// NewRecordBuilder starts a builder for records owned by agent.
func NewRecordBuilder(agent string) *RecordBuilder {
	return &RecordBuilder{
		rec: metrics.Record{
			Agent:     agent,
			RunID:     core.NewID(),
			OK:        true,
			StartedAt: time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
}

// WithRunID overrides the generated run id.
func (b *RecordBuilder) WithRunID(id string) *RecordBuilder {
	b.rec.RunID = id
	return b
}

// WithNode sets the node name.
func (b *RecordBuilder) WithNode(node string) *RecordBuilder {
	b.rec.Node = node
	return b
}

// WithDuration sets the duration in milliseconds.
func (b *RecordBuilder) WithDuration(ms int64) *RecordBuilder {
	b.rec.DurationMS = ms
	return b
}

// WithError marks the record failed with the given error text.
func (b *RecordBuilder) WithError(typ, msg string) *RecordBuilder {
	b.rec.OK = false
	b.rec.ErrorType = typ
	b.rec.Error = msg
	return b
}

// Build returns the assembled record.
func (b *RecordBuilder) Build() metrics.Record { return b.rec }

// LedgerOf groups records into a ledger by their agent field.
func LedgerOf(records ...metrics.Record) metrics.Ledger {
	out := metrics.Ledger{}
	for _, r := range records {
		out[r.Agent] = append(out[r.Agent], r)
	}
	return out
}
