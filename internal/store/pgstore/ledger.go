package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

func (s *Store) InsertOrder(ctx context.Context, order *ledger.Order) (int64, error) {
	var orderID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (order_date, client_username, supervisor_username, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id
	`, order.OrderDate, order.ClientUsername, order.SupervisorUsername, order.Notes).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	order.OrderID = orderID
	return orderID, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID int64) (*ledger.Order, error) {
	var order ledger.Order
	err := s.db.GetContext(ctx, &order, `
		SELECT order_id, order_date, client_username, supervisor_username, notes
		FROM orders
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, fault.NotFoundf("order %d", orderID)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &order, nil
}

// AppendItem claims the item and records the order line inside one
// transaction, so the append and the assignment are never visible apart.
func (s *Store) AppendItem(ctx context.Context, orderID, itemID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return fault.NotFoundf("order %d", orderID)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE items
		SET assigned_order_id = $1
		WHERE item_id = $2
		AND (assigned_order_id IS NULL OR assigned_order_id = $1)
	`, orderID, itemID)
	if err != nil {
		return fmt.Errorf("assign item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var assigned sql.NullInt64
		err := tx.GetContext(ctx, &assigned, `SELECT assigned_order_id FROM items WHERE item_id = $1`, itemID)
		if isNoRows(err) {
			return fault.NotFoundf("item %d", itemID)
		}
		if err != nil {
			return fmt.Errorf("inspect item: %w", err)
		}
		return fault.Conflictf("item %d already assigned to order %d", itemID, assigned.Int64)
	}

	// Idempotent for a repeated (order, item) pair.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, item_id, found, added_at)
		VALUES ($1, $2, FALSE, NOW())
		ON CONFLICT (order_id, item_id) DO NOTHING
	`, orderID, itemID)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) ListOrderItems(ctx context.Context, orderID int64) ([]catalog.Item, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID); err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return nil, fault.NotFoundf("order %d", orderID)
	}

	var rows []itemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+itemColumns+`
		FROM order_items oi
		JOIN items USING (item_id)
		WHERE oi.order_id = $1
		ORDER BY oi.added_at, item_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	return s.attachPieces(ctx, rows)
}
