// Package eventlog provides an append-only log of infection transition
// events and report lines, with in-memory, SQLite, and Postgres backends.
package eventlog

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Record is a single logged transition or report line.
type Record struct {
	Day        int       `json:"day"`
	DiseaseID  int       `json:"disease_id"`
	HostID     int       `json:"host_id"`
	Kind       string    `json:"kind"`
	Line       string    `json:"line,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Log is an append-only sink for infection records.
type Log interface {
	Append(ctx context.Context, rec Record) error
	// Day returns all records for the given simulation day, ordered by
	// insertion.
	Day(ctx context.Context, day int) ([]Record, error)
	Close() error
}

// MemoryLog keeps records in process memory. Used by tests and ephemeral
// runs.
type MemoryLog struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryLog constructs an empty in-memory log.
func NewMemoryLog() *MemoryLog { return &MemoryLog{} }

// Append implements Log.
func (l *MemoryLog) Append(_ context.Context, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}
	l.records = append(l.records, rec)
	return nil
}

// Day implements Log.
func (l *MemoryLog) Day(_ context.Context, day int) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Record
	for _, rec := range l.records {
		if rec.Day == day {
			out = append(out, rec)
		}
	}
	return out, nil
}

// All returns every record ordered by day then insertion.
func (l *MemoryLog) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Close implements Log.
func (l *MemoryLog) Close() error { return nil }
