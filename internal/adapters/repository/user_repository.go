package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, email, role, password, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Email, &user.Role, &user.Password, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, role, password, created_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID,
		user.Email,
		user.Role,
		user.Password,
		user.CreatedAt,
	)
	if pqCode(err) == pqUniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, email, role, created_at FROM users ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
