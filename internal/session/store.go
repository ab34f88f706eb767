package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store keeps the open-order pointer for each session between requests. A
// pointer is set when an order is started and cleared on logout or explicit
// abandonment; clearing never touches the order itself.
type Store interface {
	SetOpenOrder(ctx context.Context, sessionID uuid.UUID, orderID int64) error
	OpenOrder(ctx context.Context, sessionID uuid.UUID) (int64, bool, error)
	ClearOpenOrder(ctx context.Context, sessionID uuid.UUID) error
}

// MemoryStore is the in-process Store used in development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	pointers map[uuid.UUID]int64
}

// NewMemoryStore creates an empty in-memory pointer store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pointers: make(map[uuid.UUID]int64)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) SetOpenOrder(_ context.Context, sessionID uuid.UUID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointers[sessionID] = orderID
	return nil
}

func (s *MemoryStore) OpenOrder(_ context.Context, sessionID uuid.UUID) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orderID, ok := s.pointers[sessionID]
	return orderID, ok, nil
}

func (s *MemoryStore) ClearOpenOrder(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pointers, sessionID)
	return nil
}
