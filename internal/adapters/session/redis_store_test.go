package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/session"
	"github.com/AchilleasB/salon-booking/booking-service/internal/config"
	"github.com/AchilleasB/salon-booking/booking-service/internal/mocks"
)

func newStore(client *mocks.MockRedisClient) *session.RedisStore {
	return session.NewRedisStore(client, config.NewCircuitBreaker(config.BreakerRedis, zap.NewNop()))
}

func TestRedisStore_RevokeAndCheck(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := newStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", 10*time.Minute))
	assert.True(t, client.HasKey("session:revoked:jti-1"))
	assert.Equal(t, 10*time.Minute, client.TTL("session:revoked:jti-1"))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisStore_ErrorsPropagate(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := newStore(client)
	boom := errors.New("connection refused")
	client.SetError = boom
	client.ExistsError = boom

	require.ErrorIs(t, store.Revoke(context.Background(), "jti", time.Minute), boom)

	_, err := store.IsRevoked(context.Background(), "jti")
	require.ErrorIs(t, err, boom)
}

func TestRedisStore_BreakerOpensAfterFailures(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := newStore(client)
	client.ExistsError = errors.New("timeout")

	for i := 0; i < 3; i++ {
		_, _ = store.IsRevoked(context.Background(), "jti")
	}

	client.ExistsError = nil
	_, err := store.IsRevoked(context.Background(), "jti")
	require.Error(t, err, "open breaker rejects calls without reaching redis")
}
