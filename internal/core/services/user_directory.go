package services

import (
	"context"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type UserDirectory struct {
	users ports.UserRepository
}

var _ ports.UserDirectory = (*UserDirectory)(nil)

func NewUserDirectory(users ports.UserRepository) *UserDirectory {
	return &UserDirectory{users: users}
}

func (d *UserDirectory) List(ctx context.Context, session *domain.Session) ([]domain.User, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return d.users.List(ctx)
}
