// internal/taxonomy/service.go
package taxonomy

import "context"

// Service defines the interface for the taxonomy service.
type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	SubCategoriesOf(ctx context.Context, mainCategory string) ([]string, error)
	Contains(ctx context.Context, mainCategory, subCategory string) (bool, error)
}
