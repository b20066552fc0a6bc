package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

// MockEventPublisher implements ports.EventPublisher and records what it
// was asked to publish.
type MockEventPublisher struct {
	mu        sync.Mutex
	Published []domain.OutboxEvent

	PublishError error
}

var _ ports.EventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.Published = append(m.Published, evt)
	return nil
}

func (m *MockEventPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}
