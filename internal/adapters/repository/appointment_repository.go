package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type AppointmentRepository struct {
	db *sql.DB
}

var _ ports.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, service_id, scheduled_at, status, rating, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.ServiceID, &a.ScheduledAt, &a.Status, &a.Rating, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// UpdateRating overwrites the rating; concurrent writers are last-write-wins.
func (r *AppointmentRepository) UpdateRating(ctx context.Context, id string, rating int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE appointments SET rating = $1 WHERE id = $2`, rating, id)
	return err
}

func (r *AppointmentRepository) AverageRating(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating)::float8 FROM appointments WHERE rating IS NOT NULL`,
	).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
