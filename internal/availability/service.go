// internal/availability/service.go
package availability

import (
	"context"

	"reusehub/internal/catalog"
)

// Service lists the items of a category pair that no order has claimed yet.
type Service interface {
	AvailableItems(ctx context.Context, mainCategory, subCategory string) ([]catalog.Item, error)
}
