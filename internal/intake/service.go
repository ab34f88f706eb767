// internal/intake/service.go
package intake

import (
	"context"

	"reusehub/internal/catalog"
	"reusehub/internal/session"
)

// Service defines the interface for donation intake.
type Service interface {
	AcceptDonation(ctx context.Context, sess session.Context, donorUsername string,
		descriptor catalog.ItemDescriptor, pieces []catalog.PieceDescriptor) (int64, error)
}
