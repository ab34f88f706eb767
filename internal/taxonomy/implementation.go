// internal/taxonomy/implementation.go
package taxonomy

import (
	"context"
	"fmt"
)

// Store is the read side of the registered category set. Categories are
// created administratively, outside the flows served here.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new taxonomy service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// ListCategories returns every registered (main, sub) pair in stable order.
func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// SubCategoriesOf filters the registered set down to the subcategories under
// mainCategory. An unknown main category yields an empty slice, not an
// error: the category set is advisory data for a form.
func (s *service) SubCategoriesOf(ctx context.Context, mainCategory string) ([]string, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	subs := []string{}
	for _, c := range categories {
		if c.MainCategory == mainCategory {
			subs = append(subs, c.SubCategory)
		}
	}
	return subs, nil
}

// Contains reports whether the (main, sub) pair is registered.
func (s *service) Contains(ctx context.Context, mainCategory, subCategory string) (bool, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return false, fmt.Errorf("list categories: %w", err)
	}

	for _, c := range categories {
		if c.MainCategory == mainCategory && c.SubCategory == subCategory {
			return true, nil
		}
	}
	return false, nil
}
