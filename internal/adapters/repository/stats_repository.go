package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type StatsRepository struct {
	db *sql.DB
}

var _ ports.StatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) DashboardStats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM users),
		    (SELECT COUNT(*) FROM appointments),
		    (SELECT COUNT(*) FROM appointments WHERE scheduled_at >= $1 AND scheduled_at < $2),
		    (SELECT COUNT(*) FROM complaints WHERE status = 'PENDING')`,
		dayStart, dayEnd,
	).Scan(&s.TotalUsers, &s.TotalAppointments, &s.TodayAppointments, &s.PendingComplaints)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
