package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// RedisStore keeps a revocation marker per token ID. Markers expire together
// with the token, so the keyspace never grows past the live sessions.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.rdb.Get(ctx, revokedKey(tokenID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("checking session: %w", err)
	}
}

// NoopStore is used when Redis is disabled. Logout then only clears the
// client cookie and tokens stay valid until they expire.
type NoopStore struct{}

func (NoopStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
