// internal/location/implementation.go
package location

import (
	"context"
	"fmt"

	"reusehub/internal/fault"
)

// Store is the read side of the room/shelf registry.
type Store interface {
	ListRooms(ctx context.Context) ([]Room, error)
	// ShelvesInRoom returns fault.ErrNotFound when roomNum is unregistered.
	ShelvesInRoom(ctx context.Context, roomNum int) ([]Shelf, error)
}

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new location registry instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// ListRooms returns all rooms in stable order.
func (s *service) ListRooms(ctx context.Context) ([]Room, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ShelvesInRoom returns the shelves of a registered room. Unlike the
// taxonomy sub-lookup, an unknown room is an error: pieces must never point
// at a room the registry does not know.
func (s *service) ShelvesInRoom(ctx context.Context, roomNum int) ([]Shelf, error) {
	shelves, err := s.store.ShelvesInRoom(ctx, roomNum)
	if err != nil {
		return nil, fmt.Errorf("shelves in room %d: %w", roomNum, err)
	}
	return shelves, nil
}

// HasShelf reports whether (roomNum, shelfNum) resolves to a registered
// shelf. Used by the catalog to validate piece placement.
func (s *service) HasShelf(ctx context.Context, roomNum, shelfNum int) (bool, error) {
	shelves, err := s.store.ShelvesInRoom(ctx, roomNum)
	if err != nil {
		if fault.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("shelves in room %d: %w", roomNum, err)
	}
	for _, sh := range shelves {
		if sh.ShelfNum == shelfNum {
			return true, nil
		}
	}
	return false, nil
}
