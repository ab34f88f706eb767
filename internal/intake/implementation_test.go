package intake_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/identity"
	"reusehub/internal/intake"
	"reusehub/internal/location"
	"reusehub/internal/session"
	"reusehub/internal/store/memstore"
	"reusehub/internal/taxonomy"
	"reusehub/pkg/eventlog"
)

type fixture struct {
	intake  intake.Service
	catalog catalog.Service
	log     *eventlog.MemoryLog
	staff   session.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	st.SeedCategories(taxonomy.Category{MainCategory: "Furniture", SubCategory: "Chair"})
	st.SeedShelf(location.Shelf{RoomNum: 1, ShelfNum: 1})

	log := eventlog.NewMemoryLog()
	users := identity.NewService(st, log)
	items := catalog.NewService(st, location.NewService(st))

	ctx := context.Background()
	_, err := users.Register(ctx, identity.User{Username: "sam", FirstName: "Sam", LastName: "Ode", Role: identity.RoleStaff})
	require.NoError(t, err)
	_, err = users.Register(ctx, identity.User{Username: "dora", FirstName: "Dora", LastName: "Ek", Role: identity.RoleDonor})
	require.NoError(t, err)

	return &fixture{
		intake:  intake.NewService(users, taxonomy.NewService(st), items, log),
		catalog: items,
		log:     log,
		staff:   session.Context{SessionID: uuid.New(), Username: "sam", Staff: true},
	}
}

func chairDonation() (catalog.ItemDescriptor, []catalog.PieceDescriptor) {
	return catalog.ItemDescriptor{
			Description: "oak dining chair",
			Category:    taxonomy.Category{MainCategory: "Furniture", SubCategory: "Chair"},
		}, []catalog.PieceDescriptor{
			{Description: "whole", Length: 45, Width: 45, Height: 90, RoomNum: 1, ShelfNum: 1},
		}
}

func TestAcceptDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	descriptor, pieces := chairDonation()
	itemID, err := f.intake.AcceptDonation(ctx, f.staff, "dora", descriptor, pieces)
	require.NoError(t, err)
	require.NotZero(t, itemID)

	item, err := f.catalog.GetItem(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "dora", item.DonorUsername)
	assert.Nil(t, item.AssignedOrderID)

	entries, err := f.log.Load(ctx, eventlog.ItemStream(itemID))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, eventlog.DonationAccepted, entries[0].Kind)
}

func TestAcceptDonationRequiresStaff(t *testing.T) {
	f := newFixture(t)
	visitor := session.Context{SessionID: uuid.New(), Username: "dora"}

	descriptor, pieces := chairDonation()
	_, err := f.intake.AcceptDonation(context.Background(), visitor, "dora", descriptor, pieces)
	assert.ErrorIs(t, err, fault.ErrUnauthorized)
}

func TestAcceptDonationUnknownDonor(t *testing.T) {
	f := newFixture(t)

	descriptor, pieces := chairDonation()
	_, err := f.intake.AcceptDonation(context.Background(), f.staff, "nobody", descriptor, pieces)
	assert.True(t, fault.IsNotFound(err))

	// Staff are not donors.
	_, err = f.intake.AcceptDonation(context.Background(), f.staff, "sam", descriptor, pieces)
	assert.True(t, fault.IsNotFound(err))
}

func TestAcceptDonationUnknownCategory(t *testing.T) {
	f := newFixture(t)

	descriptor, pieces := chairDonation()
	descriptor.Category.SubCategory = "Throne"
	_, err := f.intake.AcceptDonation(context.Background(), f.staff, "dora", descriptor, pieces)
	assert.True(t, fault.IsNotFound(err))
}

func TestAcceptDonationRejectionLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	descriptor, _ := chairDonation()
	_, err := f.intake.AcceptDonation(ctx, f.staff, "dora", descriptor, nil)
	require.True(t, fault.IsValidation(err))

	entries, err := f.log.Load(ctx, eventlog.ItemStream(1))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
