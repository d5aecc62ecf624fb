package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps the revocation list for signed-out session
// tokens. Entries are keyed by token id and expire when the token
// itself would have expired, so the set stays bounded.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func revocationKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to remember.
		return nil
	}
	if err := s.rdb.Set(ctx, revocationKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

func (s *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return n > 0, nil
}
