package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

const revokedKeyPrefix = "session:revoked:"

// RedisClient is the subset of *redis.Client used by the store.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps revoked token ids in Redis with a TTL equal to the
// token's remaining lifetime.
type RedisStore struct {
	client RedisClient
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client RedisClient, cb *gobreaker.CircuitBreaker) *RedisStore {
	return &RedisStore{client: client, cb: cb}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
	})
	return err
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	})
	if err != nil {
		return false, err
	}
	return res.(int64) > 0, nil
}
