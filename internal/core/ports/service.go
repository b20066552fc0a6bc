package ports

import (
	"context"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

type AuthResult struct {
	Token string
	User  domain.User
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, session *domain.Session) error
}

type AnnouncementService interface {
	List(ctx context.Context) ([]domain.Announcement, error)
	Create(ctx context.Context, session *domain.Session, title, content string, visible *bool) (*domain.Announcement, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
}

type MessagingService interface {
	ListForCaller(ctx context.Context, session *domain.Session, box domain.Direction) ([]domain.MessageView, error)
	Send(ctx context.Context, session *domain.Session, receiverID, content string) (*domain.Message, error)
}

// ServiceInput carries admin catalog fields. A nil Price means the caller
// sent no valid JSON number.
type ServiceInput struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
}

type CatalogService interface {
	List(ctx context.Context) (*domain.Catalog, error)
	AdminList(ctx context.Context, session *domain.Session) ([]domain.Service, error)
	Create(ctx context.Context, session *domain.Session, in ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, session *domain.Session, id string, in ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
}

type RatingService interface {
	Rate(ctx context.Context, session *domain.Session, appointmentID string, rating *int) error
}

type DashboardService interface {
	Stats(ctx context.Context, session *domain.Session) (*domain.DashboardStats, error)
}

type UserDirectory interface {
	List(ctx context.Context, session *domain.Session) ([]domain.User, error)
}
