package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type ServiceRepository struct {
	db *sql.DB
}

var _ ports.ServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, created_at FROM services ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Service{}
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Create(ctx context.Context, s domain.Service) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (id, name, description, price, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Description, s.Price, s.CreatedAt,
	)
	return err
}

func (r *ServiceRepository) Update(ctx context.Context, s domain.Service) (*domain.Service, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE services SET name = $1, description = $2, price = $3
		 WHERE id = $4
		 RETURNING created_at`,
		s.Name, s.Description, s.Price, s.ID,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
