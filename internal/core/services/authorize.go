package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

const msgUnauthorized = "Yetkisiz"

var validate = validator.New(validator.WithRequiredStructEnabled())

func requireSession(s *domain.Session) error {
	if s == nil {
		return domain.NewError(domain.ErrUnauthenticated, msgUnauthorized)
	}
	return nil
}

// requireRole rejects anonymous callers and sessions without role with
// ErrUnauthorized.
func requireRole(s *domain.Session, role domain.Role) error {
	if !s.HasRole(role) {
		return domain.NewError(domain.ErrUnauthorized, msgUnauthorized)
	}
	return nil
}

func invalid(message string) error {
	return domain.NewError(domain.ErrInvalidInput, message)
}
