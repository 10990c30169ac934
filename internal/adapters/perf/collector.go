// Package perf keeps an in-memory ring of store timings so the desk tools can
// show which operations and statements are slow without an external
// metrics system.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 4096

// EntryKind distinguishes whole operations from single statements.
type EntryKind uint8

const (
	// KindOperation is one unit of work, e.g. "record_payment".
	KindOperation EntryKind = iota
	// KindQuery is one statement sent to the store.
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Name       string // operation name or "ExecContext"/"QueryContext"/...
	Failed     bool
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// Writes never block on readers; when full, oldest entries are overwritten.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int64
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0 (non-positive falls back to DefaultRingSize)
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record appends an entry to the ring buffer.
// PRE: e is a valid Entry
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Snapshot holds aggregated timing data computed on read.
type Snapshot struct {
	Operations        int
	FailedOperations  int
	OperationP50Ms    float64
	OperationP95Ms    float64
	OperationP99Ms    float64
	SlowestOperations []Stat
	SlowestQueries    []Stat
}

// Stat aggregates timing for a single operation or statement kind.
type Stat struct {
	Name    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

// Snapshot computes aggregated stats from entries recorded at or after since.
// PRE: topN > 0
// POST: Returns a Snapshot with percentiles and top-N lists
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	var opDurations []float64
	opStats := make(map[string]*Stat)
	queryStats := make(map[string]*Stat)
	var snap Snapshot

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		switch e.Kind {
		case KindOperation:
			opDurations = append(opDurations, e.DurationMs)
			snap.Operations++
			if e.Failed {
				snap.FailedOperations++
			}
			accumulate(opStats, e)
		case KindQuery:
			accumulate(queryStats, e)
		}
	}

	snap.SlowestOperations = topByAvg(opStats, topN)
	snap.SlowestQueries = topByAvg(queryStats, topN)

	if len(opDurations) > 0 {
		sort.Float64s(opDurations)
		snap.OperationP50Ms = percentile(opDurations, 50)
		snap.OperationP95Ms = percentile(opDurations, 95)
		snap.OperationP99Ms = percentile(opDurations, 99)
	}
	return snap
}

func accumulate(stats map[string]*Stat, e Entry) {
	s, ok := stats[e.Name]
	if !ok {
		s = &Stat{Name: e.Name}
		stats[e.Name] = s
	}
	s.Count++
	s.TotalMs += e.DurationMs
	if e.DurationMs > s.MaxMs {
		s.MaxMs = e.DurationMs
	}
	s.AvgMs = s.TotalMs / float64(s.Count)
}

// percentile returns the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns the top N entries sorted by average duration (descending).
func topByAvg(stats map[string]*Stat, n int) []Stat {
	list := make([]Stat, 0, len(stats))
	for _, s := range stats {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Name < list[j].Name
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
