package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type MessagingService struct {
	repo   ports.MessageRepository
	logger *zap.Logger
}

var _ ports.MessagingService = (*MessagingService)(nil)

func NewMessagingService(repo ports.MessageRepository, logger *zap.Logger) *MessagingService {
	return &MessagingService{repo: repo, logger: logger}
}

type messageInput struct {
	ReceiverID string `validate:"required"`
	Content    string `validate:"required"`
}

// ListForCaller returns the caller's conversation history. Direction is
// decided by the store relative to the session's user id.
func (s *MessagingService) ListForCaller(
	ctx context.Context,
	session *domain.Session,
	box domain.Direction,
) ([]domain.MessageView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if box != "" && !box.Valid() {
		return nil, invalid("Geçersiz kutu")
	}
	return s.repo.ListForUser(ctx, session.UserID, box)
}

// Send stores a message from the caller to receiverID. The receiver is not
// looked up first; the store's foreign key rejects unknown users.
func (s *MessagingService) Send(
	ctx context.Context,
	session *domain.Session,
	receiverID, content string,
) (*domain.Message, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validate.Struct(messageInput{ReceiverID: receiverID, Content: content}); err != nil {
		return nil, invalid("Alıcı ve mesaj zorunlu")
	}

	m := domain.Message{
		ID:         uuid.NewString(),
		SenderID:   session.UserID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	payload, err := json.Marshal(domain.MessageSentPayload{
		MessageID:  m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
	})
	if err != nil {
		return nil, err
	}
	evt := domain.OutboxEvent{
		ID:        uuid.NewString(),
		Type:      domain.EventMessageSent,
		Payload:   payload,
		CreatedAt: m.CreatedAt,
	}

	if err := s.repo.Create(ctx, m, evt); err != nil {
		return nil, err
	}
	messagesSent.Inc()

	s.logger.Debug("message sent", zap.String("message_id", m.ID), zap.String("sender_id", m.SenderID))
	return &m, nil
}
