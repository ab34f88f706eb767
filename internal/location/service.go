// internal/location/service.go
package location

import "context"

// Service defines the interface for the location registry.
type Service interface {
	ListRooms(ctx context.Context) ([]Room, error)
	ShelvesInRoom(ctx context.Context, roomNum int) ([]Shelf, error)
	HasShelf(ctx context.Context, roomNum, shelfNum int) (bool, error)
}
