// internal/intake/implementation.go
package intake

import (
	"context"
	"fmt"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/identity"
	"reusehub/internal/session"
	"reusehub/internal/taxonomy"
	"reusehub/pkg/eventlog"
)

// service implements the Service interface.
type service struct {
	users      identity.Service
	categories taxonomy.Service
	items      catalog.Service
	log        eventlog.Log
}

// NewService creates a new donation intake instance.
func NewService(users identity.Service, categories taxonomy.Service, items catalog.Service, log eventlog.Log) Service {
	return &service{
		users:      users,
		categories: categories,
		items:      items,
		log:        log,
	}
}

// AcceptDonation validates the donor and the category pair, then commits the
// item with its pieces through the catalog. Rejections happen before any
// state changes; a rejected donation leaves no trace.
func (s *service) AcceptDonation(ctx context.Context, sess session.Context, donorUsername string,
	descriptor catalog.ItemDescriptor, pieces []catalog.PieceDescriptor) (int64, error) {
	if !sess.Staff {
		return 0, fault.Unauthorizedf("only staff may accept donations")
	}

	isDonor, err := s.users.HasRole(ctx, donorUsername, identity.RoleDonor)
	if err != nil {
		return 0, fmt.Errorf("check donor: %w", err)
	}
	if !isDonor {
		return 0, fault.NotFoundf("no registered donor %q", donorUsername)
	}

	known, err := s.categories.Contains(ctx, descriptor.Category.MainCategory, descriptor.Category.SubCategory)
	if err != nil {
		return 0, fmt.Errorf("check category: %w", err)
	}
	if !known {
		return 0, fault.NotFoundf("no category (%q, %q)",
			descriptor.Category.MainCategory, descriptor.Category.SubCategory)
	}

	descriptor.DonorUsername = donorUsername
	itemID, err := s.items.CreateItem(ctx, descriptor, pieces)
	if err != nil {
		return 0, err
	}

	if err := eventlog.Record(ctx, s.log, eventlog.ItemStream(itemID), eventlog.DonationAccepted,
		catalog.DonationAcceptedEvent{
			ItemID:        itemID,
			DonorUsername: donorUsername,
			MainCategory:  descriptor.Category.MainCategory,
			SubCategory:   descriptor.Category.SubCategory,
			PieceCount:    len(pieces),
		}); err != nil {
		return 0, fmt.Errorf("record donation: %w", err)
	}

	return itemID, nil
}
