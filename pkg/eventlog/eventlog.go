// Package eventlog is an append-only record of domain activity: donations
// accepted, orders started, items assigned. Streams are versioned so writers
// can opt into optimistic concurrency checks.
package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrVersionConflict is returned when the stream moved past the
	// expected version between read and append.
	ErrVersionConflict = errors.New("eventlog: version conflict")
)

// AnyVersion disables the optimistic version check on Append.
const AnyVersion = -1

// Kind names the domain activity an entry records.
type Kind string

const (
	DonationAccepted Kind = "DonationAccepted"
	OrderStarted     Kind = "OrderStarted"
	ItemAssigned     Kind = "ItemAssigned"
	UserRegistered   Kind = "UserRegistered"
)

// Entry is one recorded domain event.
type Entry struct {
	ID        int64           `json:"id" db:"id"`
	Stream    string          `json:"stream" db:"stream"`
	Kind      Kind            `json:"kind" db:"kind"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	Version   int             `json:"version" db:"version"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Log appends and reads entries per stream.
type Log interface {
	// Append adds entries to stream. When expectedVersion is not
	// AnyVersion and the stream's current version differs, Append fails
	// with ErrVersionConflict and writes nothing.
	Append(ctx context.Context, stream string, expectedVersion int, entries []Entry) error
	Load(ctx context.Context, stream string) ([]Entry, error)
	Version(ctx context.Context, stream string) (int, error)
}

// ItemStream names the stream for one catalog item.
func ItemStream(itemID int64) string { return fmt.Sprintf("item:%d", itemID) }

// OrderStream names the stream for one order.
func OrderStream(orderID int64) string { return fmt.Sprintf("order:%d", orderID) }

// UserStream names the stream for one registered user.
func UserStream(username string) string { return fmt.Sprintf("user:%s", username) }

// Record marshals payload and appends a single entry without a version
// check. It is the common path for services that only need an audit trail.
func Record(ctx context.Context, l Log, stream string, kind Kind, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return l.Append(ctx, stream, AnyVersion, []Entry{{Kind: kind, Payload: data}})
}
