package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRedis keeps signed-out token IDs in Redis until the token would
// have expired anyway, so a revoked token cannot be replayed.
type SessionRedis struct {
	rdb *redis.Client
}

func NewSessionRedis(rdb *redis.Client) *SessionRedis { return &SessionRedis{rdb: rdb} }

var _ Sessions = (*SessionRedis)(nil)

const revokedKeyPrefix = "revoked_token:"

// Revoke marks a token ID as signed out for the remaining token lifetime.
func (s *SessionRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired, nothing to track
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %q: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether the token ID was signed out.
func (s *SessionRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check token %q: %w", tokenID, err)
	}
	return n > 0, nil
}
