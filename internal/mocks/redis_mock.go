package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient covers the Set/Exists pair the session store uses.
type MockRedisClient struct {
	mu   sync.RWMutex
	data map[string]redisEntry

	SetError    error
	ExistsError error
}

type redisEntry struct {
	value     string
	ttl       time.Duration
	expiresAt time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: make(map[string]redisEntry)}
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}

	e := redisEntry{value: value.(string), ttl: expiration}
	if expiration > 0 {
		e.expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = e

	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedisClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewIntCmd(ctx)
	if m.ExistsError != nil {
		cmd.SetErr(m.ExistsError)
		return cmd
	}

	var count int64
	for _, key := range keys {
		if m.live(key) {
			count++
		}
	}
	cmd.SetVal(count)
	return cmd
}

// TTL returns the expiration a key was written with.
func (m *MockRedisClient) TTL(key string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key].ttl
}

// HasKey checks if a key exists (for test assertions).
func (m *MockRedisClient) HasKey(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.live(key)
}

func (m *MockRedisClient) live(key string) bool {
	e, ok := m.data[key]
	return ok && (e.expiresAt.IsZero() || time.Now().Before(e.expiresAt))
}
