// internal/availability/implementation.go
package availability

import (
	"context"
	"fmt"

	"reusehub/internal/catalog"
)

// Store is the read side the index derives from.
type Store interface {
	// ListUnassigned returns the items of the category pair whose
	// assignedOrderID is null, ordered by item id.
	ListUnassigned(ctx context.Context, mainCategory, subCategory string) ([]catalog.Item, error)
}

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new availability index instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// AvailableItems lists unassigned items of the category pair. The listing is
// a snapshot and may be stale by the time a client acts on it; staleness is
// resolved by the atomic guard at add-to-order time, not here. An empty
// slice means no stock; callers that need to tell "no such category" apart
// check the taxonomy first.
func (s *service) AvailableItems(ctx context.Context, mainCategory, subCategory string) ([]catalog.Item, error) {
	items, err := s.store.ListUnassigned(ctx, mainCategory, subCategory)
	if err != nil {
		return nil, fmt.Errorf("list available items: %w", err)
	}
	if items == nil {
		items = []catalog.Item{}
	}
	return items, nil
}
