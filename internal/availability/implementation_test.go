package availability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reusehub/internal/availability"
	"reusehub/internal/catalog"
	"reusehub/internal/location"
	"reusehub/internal/store/memstore"
	"reusehub/internal/taxonomy"
)

func newFixture(t *testing.T) (availability.Service, catalog.Service, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	st.SeedShelf(location.Shelf{RoomNum: 1, ShelfNum: 1})
	items := catalog.NewService(st, location.NewService(st))
	return availability.NewService(st), items, st
}

func addChair(t *testing.T, items catalog.Service, description string) int64 {
	t.Helper()
	itemID, err := items.CreateItem(context.Background(), catalog.ItemDescriptor{
		Description:   description,
		Category:      taxonomy.Category{MainCategory: "Furniture", SubCategory: "Chair"},
		DonorUsername: "dora",
	}, []catalog.PieceDescriptor{
		{Description: "whole", Length: 1, Width: 1, Height: 1, RoomNum: 1, ShelfNum: 1},
	})
	require.NoError(t, err)
	return itemID
}

func TestAvailableItemsExcludesAssigned(t *testing.T) {
	svc, items, _ := newFixture(t)
	ctx := context.Background()

	first := addChair(t, items, "stool")
	second := addChair(t, items, "armchair")

	listed, err := svc.AvailableItems(ctx, "Furniture", "Chair")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// Item 101 assigned to order 55 disappears from the listing; the rest
	// of the stock stays visible.
	require.NoError(t, items.MarkAssigned(ctx, first, 55))

	listed, err = svc.AvailableItems(ctx, "Furniture", "Chair")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second, listed[0].ItemID)
}

func TestAvailableItemsFiltersByCategoryPair(t *testing.T) {
	svc, items, _ := newFixture(t)
	addChair(t, items, "stool")

	listed, err := svc.AvailableItems(context.Background(), "Furniture", "Table")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAvailableItemsEmptyIsNotNil(t *testing.T) {
	svc, _, _ := newFixture(t)

	listed, err := svc.AvailableItems(context.Background(), "Furniture", "Chair")
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestAvailableItemsCarryPieces(t *testing.T) {
	svc, items, _ := newFixture(t)
	addChair(t, items, "stool")

	listed, err := svc.AvailableItems(context.Background(), "Furniture", "Chair")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Pieces, 1)
	assert.Equal(t, "whole", listed[0].Pieces[0].Description)
}
