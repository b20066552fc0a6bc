package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type AnnouncementRepository interface {
	ListVisible(ctx context.Context) ([]domain.Announcement, error)
	// Create stores the announcement and, when evt is non-nil, the outbox
	// event in the same transaction.
	Create(ctx context.Context, a domain.Announcement, evt *domain.OutboxEvent) error
	Delete(ctx context.Context, id string) error
}

type MessageRepository interface {
	// ListForUser returns messages where userID is sender or receiver,
	// newest first. An empty box returns both directions.
	ListForUser(ctx context.Context, userID string, box domain.Direction) ([]domain.MessageView, error)
	Create(ctx context.Context, m domain.Message, evt domain.OutboxEvent) error
}

type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	Create(ctx context.Context, s domain.Service) error
	Update(ctx context.Context, s domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateRating(ctx context.Context, id string, rating int) error
	// AverageRating is nil when no appointment has been rated.
	AverageRating(ctx context.Context) (*float64, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.DashboardStats, error)
}
