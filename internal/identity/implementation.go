// internal/identity/implementation.go
package identity

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"reusehub/internal/fault"
	"reusehub/pkg/eventlog"
)

// Store is the persistence contract of the user registry.
type Store interface {
	// InsertUser fails with fault.ErrConflict when the username is taken.
	InsertUser(ctx context.Context, user *User) error
	// GetUser fails with fault.ErrNotFound for unknown usernames.
	GetUser(ctx context.Context, username string) (*User, error)
}

// service implements the Service interface.
type service struct {
	store       Store
	log         eventlog.Log
	rateLimiter *rate.Limiter
}

// NewService creates a new identity service instance.
func NewService(store Store, log eventlog.Log) Service {
	return &service{
		store:       store,
		log:         log,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 registrations per minute
	}
}

// Register records a new visitor or staff member.
func (s *service) Register(ctx context.Context, user User) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	var problems []string
	if user.Username == "" {
		problems = append(problems, "username is required")
	}
	if user.FirstName == "" || user.LastName == "" {
		problems = append(problems, "first and last name are required")
	}
	if !user.Role.Known() {
		problems = append(problems, fmt.Sprintf("unknown role %q", user.Role))
	}
	if err := fault.Validation(problems); err != nil {
		return nil, err
	}

	user.CreatedAt = time.Now().UTC()
	if err := s.store.InsertUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("register %q: %w", user.Username, err)
	}

	if err := eventlog.Record(ctx, s.log, eventlog.UserStream(user.Username), eventlog.UserRegistered,
		UserRegisteredEvent{Username: user.Username, Role: user.Role}); err != nil {
		return nil, fmt.Errorf("record registration: %w", err)
	}

	return &user, nil
}

// GetUser retrieves a user by username.
func (s *service) GetUser(ctx context.Context, username string) (*User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}

// HasRole reports whether username is registered with the given role. An
// unknown username is simply "no", not an error.
func (s *service) HasRole(ctx context.Context, username string, role Role) (bool, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		if fault.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get user %q: %w", username, err)
	}
	return user.Role == role, nil
}
