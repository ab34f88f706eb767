// internal/identity/service.go
package identity

import "context"

// Service defines the interface for the user registry.
type Service interface {
	Register(ctx context.Context, user User) (*User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	HasRole(ctx context.Context, username string, role Role) (bool, error)
}
