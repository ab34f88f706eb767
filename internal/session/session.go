// Package session models the acting staff session. The core never
// authenticates: the transport layer resolves the token and hands each call
// an explicit Context instead of reading ambient storage.
package session

import (
	"context"

	"github.com/google/uuid"
)

// Context identifies the acting user for a single call. Staff reflects the
// capability flag supplied by the auth collaborator; OpenOrderID is the
// session's open-order pointer, owned exclusively by this session.
type Context struct {
	SessionID   uuid.UUID
	Username    string
	Staff       bool
	OpenOrderID *int64
}

// WithOpenOrder returns a copy of the context pointing at orderID.
func (c Context) WithOpenOrder(orderID int64) Context {
	c.OpenOrderID = &orderID
	return c
}

type ctxKey struct{}

// NewContext attaches the session to a request context.
func NewContext(ctx context.Context, sc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext retrieves the session attached by the transport middleware.
func FromContext(ctx context.Context) (Context, bool) {
	sc, ok := ctx.Value(ctxKey{}).(Context)
	return sc, ok
}
