// internal/ledger/service.go
package ledger

import (
	"context"

	"reusehub/internal/session"
)

// Service defines the interface for the order ledger. Staff-only operations
// take the acting session explicitly; the ledger never reads ambient state.
type Service interface {
	StartOrder(ctx context.Context, sess session.Context, clientUsername, notes string) (int64, error)
	AddItem(ctx context.Context, sess session.Context, orderID, itemID int64) error
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
}
