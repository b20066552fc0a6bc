package ports

import (
	"context"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, evt domain.OutboxEvent) error
}
