package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps open-order pointers in Redis so the pointer survives a
// process restart and is shared across replicas.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps an existing Redis client. Pointers expire after ttl,
// matching the lifetime the auth collaborator gives the session token.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func pointerKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:open_order", sessionID)
}

func (s *RedisStore) SetOpenOrder(ctx context.Context, sessionID uuid.UUID, orderID int64) error {
	return s.rdb.Set(ctx, pointerKey(sessionID), orderID, s.ttl).Err()
}

func (s *RedisStore) OpenOrder(ctx context.Context, sessionID uuid.UUID) (int64, bool, error) {
	orderID, err := s.rdb.Get(ctx, pointerKey(sessionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return orderID, true, nil
}

func (s *RedisStore) ClearOpenOrder(ctx context.Context, sessionID uuid.UUID) error {
	return s.rdb.Del(ctx, pointerKey(sessionID)).Err()
}
