// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"reusehub/internal/fault"
	"reusehub/internal/location"
)

// Store is the persistence contract of the catalog.
type Store interface {
	// InsertItem persists an item with all of its pieces as one unit and
	// returns the assigned item id. Partial items are never observable.
	InsertItem(ctx context.Context, item *Item) (int64, error)

	// GetItem returns the item with its full piece list, or
	// fault.ErrNotFound.
	GetItem(ctx context.Context, itemID int64) (*Item, error)

	// AssignItem sets assignedOrderID if and only if it is currently null
	// or already equal to orderID. It fails with fault.ErrConflict when
	// the item belongs to a different order and fault.ErrNotFound when the
	// item does not exist. The check-and-set is atomic.
	AssignItem(ctx context.Context, itemID, orderID int64) error
}

// service implements the Service interface.
type service struct {
	store     Store
	locations location.Service
	tracer    trace.Tracer
}

// NewService creates a new catalog service instance.
func NewService(store Store, locations location.Service) Service {
	return &service{
		store:     store,
		locations: locations,
		tracer:    otel.Tracer("reusehub/catalog"),
	}
}

// GetItem retrieves an item and its pieces.
func (s *service) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", itemID, err)
	}
	return item, nil
}

// CreateItem validates the descriptor and pieces and persists them as one
// unit. Piece numbers not supplied by the caller are assigned sequentially
// within the item.
func (s *service) CreateItem(ctx context.Context, descriptor ItemDescriptor, pieces []PieceDescriptor) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.create_item",
		trace.WithAttributes(attribute.Int("piece.count", len(pieces))),
	)
	defer span.End()

	var problems []string
	if descriptor.Description == "" {
		problems = append(problems, "item description is required")
	}
	if len(pieces) == 0 {
		problems = append(problems, "an item needs at least one piece")
	}

	built := make([]Piece, 0, len(pieces))
	seen := make(map[int]bool, len(pieces))
	nextNum := 1
	for i, p := range pieces {
		num := p.PieceNum
		if num == 0 {
			num = nextNum
		}
		if seen[num] {
			problems = append(problems, fmt.Sprintf("piece %d: duplicate pieceNum %d", i+1, num))
		}
		seen[num] = true
		nextNum = num + 1

		if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
			problems = append(problems, fmt.Sprintf("piece %d: dimensions must be strictly positive", i+1))
		}

		ok, err := s.locations.HasShelf(ctx, p.RoomNum, p.ShelfNum)
		if err != nil {
			return 0, fmt.Errorf("resolve shelf for piece %d: %w", i+1, err)
		}
		if !ok {
			problems = append(problems, fmt.Sprintf("piece %d: no shelf %d in room %d", i+1, p.ShelfNum, p.RoomNum))
		}

		built = append(built, Piece{
			PieceNum:    num,
			Description: p.Description,
			Length:      p.Length,
			Width:       p.Width,
			Height:      p.Height,
			Location:    Placement{RoomNum: p.RoomNum, ShelfNum: p.ShelfNum},
			Notes:       p.Notes,
		})
	}

	if err := fault.Validation(problems); err != nil {
		span.SetAttributes(attribute.Bool("validation.failed", true))
		return 0, err
	}

	item := &Item{
		Description:   descriptor.Description,
		PhotoRef:      descriptor.PhotoRef,
		Color:         descriptor.Color,
		IsNew:         descriptor.IsNew,
		Material:      descriptor.Material,
		Category:      descriptor.Category,
		DonorUsername: descriptor.DonorUsername,
		DonatedAt:     time.Now().UTC(),
		Pieces:        built,
	}

	itemID, err := s.store.InsertItem(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	span.SetAttributes(attribute.Int64("item.id", itemID))
	return itemID, nil
}

// MarkAssigned transitions assignedOrderID from null to orderID. Repeating
// the call with the same order is a no-op; a different order is a conflict.
func (s *service) MarkAssigned(ctx context.Context, itemID, orderID int64) error {
	ctx, span := s.tracer.Start(ctx, "catalog.mark_assigned",
		trace.WithAttributes(
			attribute.Int64("item.id", itemID),
			attribute.Int64("order.id", orderID),
		),
	)
	defer span.End()

	if err := s.store.AssignItem(ctx, itemID, orderID); err != nil {
		if fault.IsConflict(err) {
			span.SetAttributes(attribute.Bool("conflict.detected", true))
		}
		return fmt.Errorf("assign item %d to order %d: %w", itemID, orderID, err)
	}
	return nil
}
