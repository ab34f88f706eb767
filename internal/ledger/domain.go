// internal/ledger/domain.go
package ledger

import (
	"time"

	"reusehub/internal/catalog"
)

// Order is a client's accumulating request for items, supervised by a staff
// member. Orders have no terminal state in this scope: they stay open to
// further additions until the supervising session lets its pointer go.
type Order struct {
	OrderID            int64          `json:"orderID" db:"order_id"`
	OrderDate          time.Time      `json:"orderDate" db:"order_date"`
	ClientUsername     string         `json:"clientUsername" db:"client_username"`
	SupervisorUsername string         `json:"supervisorUsername" db:"supervisor_username"`
	Notes              string         `json:"notes,omitempty" db:"notes"`
	Items              []catalog.Item `json:"items"`
}

// Line is one item appended to an order. Found mirrors the fulfillment flag
// staff tick off while pulling pieces from the shelves; it starts false.
type Line struct {
	OrderID int64     `json:"orderID" db:"order_id"`
	ItemID  int64     `json:"itemID" db:"item_id"`
	Found   bool      `json:"found" db:"found"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}

// OrderStartedEvent is recorded when a staff member opens an order.
type OrderStartedEvent struct {
	OrderID            int64  `json:"order_id"`
	ClientUsername     string `json:"client_username"`
	SupervisorUsername string `json:"supervisor_username"`
}
