package eventlog

import (
	"context"
	"sync"
	"time"
)

// MemoryLog is an in-process Log used in development and tests.
type MemoryLog struct {
	mu      sync.RWMutex
	streams map[string][]Entry
	nextID  int64
}

// NewMemoryLog creates an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{streams: make(map[string][]Entry), nextID: 1}
}

var _ Log = (*MemoryLog)(nil)

func (l *MemoryLog) Append(_ context.Context, stream string, expectedVersion int, entries []Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := len(l.streams[stream])
	if expectedVersion != AnyVersion && expectedVersion != current {
		return ErrVersionConflict
	}

	now := time.Now().UTC()
	for i, e := range entries {
		e.ID = l.nextID
		e.Stream = stream
		e.Version = current + i + 1
		e.CreatedAt = now
		l.nextID++
		l.streams[stream] = append(l.streams[stream], e)
	}
	return nil
}

func (l *MemoryLog) Load(_ context.Context, stream string) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.streams[stream]))
	copy(entries, l.streams[stream])
	return entries, nil
}

func (l *MemoryLog) Version(_ context.Context, stream string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.streams[stream]), nil
}
