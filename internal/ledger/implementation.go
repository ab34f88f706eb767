// internal/ledger/implementation.go
package ledger

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/identity"
	"reusehub/internal/session"
	"reusehub/pkg/eventlog"
)

// Store is the persistence contract of the ledger.
type Store interface {
	// InsertOrder persists a new order and returns its id.
	InsertOrder(ctx context.Context, order *Order) (int64, error)

	// GetOrder returns the order without its items, or fault.ErrNotFound.
	GetOrder(ctx context.Context, orderID int64) (*Order, error)

	// AppendItem appends itemID to the order and assigns the item to it as
	// one atomic unit: either both are visible afterwards or neither is.
	// It fails with fault.ErrNotFound when either id is unresolvable and
	// with fault.ErrConflict when the item is assigned to a different
	// order. Repeating the same (orderID, itemID) pair is a no-op.
	AppendItem(ctx context.Context, orderID, itemID int64) error

	// ListOrderItems resolves the order's items with their pieces, in the
	// order they were appended.
	ListOrderItems(ctx context.Context, orderID int64) ([]catalog.Item, error)
}

// service implements the Service interface.
type service struct {
	store  Store
	users  identity.Service
	log    eventlog.Log
	tracer trace.Tracer
}

// NewService creates a new ledger service instance.
func NewService(store Store, users identity.Service, log eventlog.Log) Service {
	return &service{
		store:  store,
		users:  users,
		log:    log,
		tracer: otel.Tracer("reusehub/ledger"),
	}
}

// StartOrder opens an empty order for a registered client, supervised by the
// acting staff member. The caller records the returned id as its session's
// open-order pointer.
func (s *service) StartOrder(ctx context.Context, sess session.Context, clientUsername, notes string) (int64, error) {
	if !sess.Staff {
		return 0, fault.Unauthorizedf("only staff may start orders")
	}

	isClient, err := s.users.HasRole(ctx, clientUsername, identity.RoleClient)
	if err != nil {
		return 0, fmt.Errorf("check client: %w", err)
	}
	if !isClient {
		return 0, fault.NotFoundf("no registered client %q", clientUsername)
	}

	order := &Order{
		OrderDate:          time.Now().UTC(),
		ClientUsername:     clientUsername,
		SupervisorUsername: sess.Username,
		Notes:              notes,
	}
	orderID, err := s.store.InsertOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	if err := eventlog.Record(ctx, s.log, eventlog.OrderStream(orderID), eventlog.OrderStarted,
		OrderStartedEvent{OrderID: orderID, ClientUsername: clientUsername, SupervisorUsername: sess.Username}); err != nil {
		return 0, fmt.Errorf("record order start: %w", err)
	}

	return orderID, nil
}

// AddItem appends an item to an order and claims the item in one atomic
// step. Two sessions racing to add the same item from a stale availability
// snapshot resolve here: exactly one append wins, the other observes a
// conflict. Repeating a successful call is idempotent.
func (s *service) AddItem(ctx context.Context, sess session.Context, orderID, itemID int64) error {
	ctx, span := s.tracer.Start(ctx, "ledger.add_item",
		trace.WithAttributes(
			attribute.Int64("order.id", orderID),
			attribute.Int64("item.id", itemID),
		),
	)
	defer span.End()

	if !sess.Staff {
		return fault.Unauthorizedf("only staff may add items to orders")
	}

	if err := s.store.AppendItem(ctx, orderID, itemID); err != nil {
		if fault.IsConflict(err) {
			span.SetAttributes(attribute.Bool("conflict.detected", true))
		}
		return fmt.Errorf("add item %d to order %d: %w", itemID, orderID, err)
	}

	if err := eventlog.Record(ctx, s.log, eventlog.OrderStream(orderID), eventlog.ItemAssigned,
		catalog.ItemAssignedEvent{ItemID: itemID, OrderID: orderID}); err != nil {
		return fmt.Errorf("record assignment: %w", err)
	}

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// GetOrder returns the order with its items and their pieces resolved, a
// read-through join across the catalog.
func (s *service) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("resolve order %d items: %w", orderID, err)
	}
	order.Items = items
	return order, nil
}
