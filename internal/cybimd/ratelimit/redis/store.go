// Package redis implements rate limit storage on Redis
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cybim/cybim-signage/internal/cybimd/ratelimit"
)

// Store implements rate limit storage using Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed rate limit store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) keyStr(key ratelimit.LimitKey) string {
	return fmt.Sprintf("rate:%s:%s", key.Type, key.RemoteIP)
}

// Increment bumps a counter and returns the current count. The key
// expires after the limit period so counters reset on their own.
func (s *Store) Increment(ctx context.Context, key ratelimit.LimitKey, limit ratelimit.Limit) (int, error) {
	redisKey := s.keyStr(key)

	pipe := s.client.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, limit.Period)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ratelimit.ErrStoreError, err)
	}

	count := int(incrCmd.Val())
	if count > limit.Rate+limit.BurstSize {
		return count, ratelimit.ErrLimitExceeded
	}
	return count, nil
}
