package services

import (
	"context"
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type DashboardService struct {
	stats ports.StatsRepository
	now   func() time.Time
}

var _ ports.DashboardService = (*DashboardService)(nil)

func NewDashboardService(stats ports.StatsRepository) *DashboardService {
	return &DashboardService{stats: stats, now: time.Now}
}

// WithClock overrides the clock used to decide "today".
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) Stats(ctx context.Context, session *domain.Session) (*domain.DashboardStats, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	start, end := domain.DayBounds(s.now())
	return s.stats.DashboardStats(ctx, start, end)
}
