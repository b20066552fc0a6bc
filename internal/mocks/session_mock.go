package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore in memory.
type MockSessionStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Duration

	RevokeError    error
	IsRevokedError error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{revoked: make(map[string]time.Duration)}
}

func (m *MockSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RevokeError != nil {
		return m.RevokeError
	}
	m.revoked[tokenID] = ttl
	return nil
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.IsRevokedError != nil {
		return false, m.IsRevokedError
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// RevokedTTL returns the ttl a token was revoked with.
func (m *MockSessionStore) RevokedTTL(tokenID string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ttl, ok := m.revoked[tokenID]
	return ttl, ok
}
