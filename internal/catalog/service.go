// internal/catalog/service.go
package catalog

import "context"

// Service defines the interface for the item/piece catalog.
type Service interface {
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	CreateItem(ctx context.Context, descriptor ItemDescriptor, pieces []PieceDescriptor) (int64, error)
	MarkAssigned(ctx context.Context, itemID, orderID int64) error
}
