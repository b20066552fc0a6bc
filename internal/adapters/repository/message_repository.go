package repository

import (
	"context"
	"database/sql"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type MessageRepository struct {
	db *sql.DB
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) ListForUser(ctx context.Context, userID string, box domain.Direction) ([]domain.MessageView, error) {
	q := `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at,
	             s.email, rc.email,
	             CASE WHEN m.sender_id = $1 THEN 'outgoing' ELSE 'incoming' END
	      FROM messages m
	      JOIN users s ON s.id = m.sender_id
	      JOIN users rc ON rc.id = m.receiver_id`

	// a self-addressed message counts as outgoing
	switch box {
	case domain.DirectionOutgoing:
		q += ` WHERE m.sender_id = $1`
	case domain.DirectionIncoming:
		q += ` WHERE m.receiver_id = $1 AND m.sender_id <> $1`
	default:
		q += ` WHERE m.sender_id = $1 OR m.receiver_id = $1`
	}
	q += ` ORDER BY m.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MessageView{}
	for rows.Next() {
		var v domain.MessageView
		if err := rows.Scan(
			&v.ID, &v.SenderID, &v.ReceiverID, &v.Content, &v.CreatedAt,
			&v.Sender.Email, &v.Receiver.Email, &v.Direction,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts the message and its outbox event atomically. An unknown
// receiver is rejected by the foreign key and reported as invalid input.
func (r *MessageRepository) Create(ctx context.Context, m domain.Message, evt domain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt,
	)
	if pqCode(err) == pqForeignKeyViolation {
		return domain.NewError(domain.ErrInvalidInput, "Alıcı bulunamadı")
	}
	if err != nil {
		return err
	}

	if err := insertOutboxEvent(ctx, tx, evt); err != nil {
		return err
	}

	return tx.Commit()
}
