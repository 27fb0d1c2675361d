package eventlog

import (
	"context"
	"sync"
)

// Log is the append-only substrate. Implementations assign Seq on append and
// never rewrite an entry.
//
// Error Contract:
//   - Append returns nil on success or a wrapped infrastructure error
//   - Entries returns the full stream in seq order; EntriesSince returns the
//     suffix strictly after the given seq (at-least-once readers may re-read
//     overlapping ranges and must tolerate duplicates)
type Log interface {
	Append(ctx context.Context, e *Entry) error
	Entries(ctx context.Context) ([]Entry, error)
	EntriesSince(ctx context.Context, seq uint64) ([]Entry, error)
}

// InMemoryLog keeps the stream in a slice. It backs tests and
// single-process deployments.
type InMemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewInMemoryLog constructs an empty in-memory log.
func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{}
}

func (l *InMemoryLog) Append(_ context.Context, e *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Seq = uint64(len(l.entries)) + 1
	l.entries = append(l.entries, *e)
	return nil
}

func (l *InMemoryLog) Entries(_ context.Context) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry{}, l.entries...), nil
}

func (l *InMemoryLog) EntriesSince(_ context.Context, seq uint64) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if seq >= uint64(len(l.entries)) {
		return nil, nil
	}
	return append([]Entry{}, l.entries[seq:]...), nil
}
