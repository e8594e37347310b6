package tool

import (
	"sort"
	"sync"
	"time"
)

// Timing is one observed invocation of a named callable.
type Timing struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	OK         bool    `json:"ok"`
}

// Stats is the per-tool rollup over a log's entries.
type Stats struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	TotalS  float64 `json:"total_s"`
	AvgMS   float64 `json:"avg_ms"`
	MaxMS   float64 `json:"max_ms"`
	Errors  int     `json:"errors"`
}

// Log is an append-only, mutex-guarded timing accumulator.
type Log struct {
	mu      sync.Mutex
	entries []Timing
}

// NewLog returns an empty, isolated log.
func NewLog() *Log { return &Log{} }

// Default is the shared process-wide log used by the package-level helpers.
var Default = NewLog()

// Observe appends one entry.
func (l *Log) Observe(name string, d time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Timing{
		Name:       name,
		DurationMS: float64(d) / float64(time.Millisecond),
		OK:         ok,
	})
}

// Start begins timing one invocation and returns the closure that records
// it. Typical use:
//
//	done := log.Start("fetch_papers")
//	...
//	done(err == nil)
func (l *Log) Start(name string) func(ok bool) {
	t0 := time.Now()
	return func(ok bool) { l.Observe(name, time.Since(t0), ok) }
}

// Snapshot returns a copy of all entries in append order.
func (l *Log) Snapshot() []Timing {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Timing, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset discards all entries.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Drain returns all entries and resets the log in one step.
func (l *Log) Drain() []Timing {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.entries
	l.entries = nil
	return out
}

// Summary rolls entries up per tool name (count, total seconds, average
// and max milliseconds, error count), sorted descending by total time.
func (l *Log) Summary() []Stats {
	buckets := map[string]*Stats{}
	order := []string{}

	for _, e := range l.Snapshot() {
		s, ok := buckets[e.Name]
		if !ok {
			s = &Stats{Name: e.Name}
			buckets[e.Name] = s
			order = append(order, e.Name)
		}
		s.Count++
		s.TotalS += e.DurationMS / 1000.0
		if e.DurationMS > s.MaxMS {
			s.MaxMS = e.DurationMS
		}
		if !e.OK {
			s.Errors++
		}
	}

	out := make([]Stats, 0, len(order))
	for _, name := range order {
		s := buckets[name]
		s.AvgMS = s.TotalS * 1000.0 / float64(s.Count)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalS > out[j].TotalS })

	return out
}

// Observe appends one entry to the Default log.
func Observe(name string, d time.Duration, ok bool) { Default.Observe(name, d, ok) }

// Start begins timing one invocation against the Default log.
func Start(name string) func(ok bool) { return Default.Start(name) }
