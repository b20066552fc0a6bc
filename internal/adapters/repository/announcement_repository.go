package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type AnnouncementRepository struct {
	db *sql.DB
}

var _ ports.AnnouncementRepository = (*AnnouncementRepository)(nil)

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) ListVisible(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, visible, created_at
		 FROM announcements
		 WHERE visible = TRUE
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Visible, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnnouncementRepository) Create(ctx context.Context, a domain.Announcement, evt *domain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO announcements (id, title, content, visible, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Title, a.Content, a.Visible, a.CreatedAt,
	)
	if err != nil {
		return err
	}

	if evt != nil {
		if err := insertOutboxEvent(ctx, tx, *evt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete is idempotent: a missing id is not reported.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}
