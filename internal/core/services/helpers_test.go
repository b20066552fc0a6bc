package services_test

import (
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

func adminSession() *domain.Session {
	return &domain.Session{
		UserID:    "admin-1",
		Email:     "admin@salon.test",
		Role:      domain.RoleAdmin,
		TokenID:   "jti-admin",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func customerSession(id string) *domain.Session {
	return &domain.Session{
		UserID:    id,
		Email:     id + "@salon.test",
		Role:      domain.RoleCustomer,
		TokenID:   "jti-" + id,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
