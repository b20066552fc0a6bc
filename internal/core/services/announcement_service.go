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

type AnnouncementService struct {
	repo   ports.AnnouncementRepository
	logger *zap.Logger
}

var _ ports.AnnouncementService = (*AnnouncementService)(nil)

func NewAnnouncementService(repo ports.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, logger: logger}
}

type announcementInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// List returns visible announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	return s.repo.ListVisible(ctx)
}

// Create publishes a new announcement. Visibility defaults to true unless
// visible is explicitly false.
func (s *AnnouncementService) Create(
	ctx context.Context,
	session *domain.Session,
	title, content string,
	visible *bool,
) (*domain.Announcement, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validate.Struct(announcementInput{Title: title, Content: content}); err != nil {
		return nil, invalid("Başlık ve içerik zorunlu")
	}

	a := domain.Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Visible:   visible == nil || *visible,
		CreatedAt: time.Now(),
	}

	var evt *domain.OutboxEvent
	if a.Visible {
		payload, err := json.Marshal(domain.AnnouncementPublishedPayload{
			AnnouncementID: a.ID,
			Title:          a.Title,
		})
		if err != nil {
			return nil, err
		}
		evt = &domain.OutboxEvent{
			ID:        uuid.NewString(),
			Type:      domain.EventAnnouncementPublished,
			Payload:   payload,
			CreatedAt: a.CreatedAt,
		}
	}

	if err := s.repo.Create(ctx, a, evt); err != nil {
		return nil, err
	}

	s.logger.Info("announcement created",
		zap.String("announcement_id", a.ID),
		zap.String("admin_id", session.UserID),
		zap.Bool("visible", a.Visible),
	)
	return &a, nil
}

// Delete removes the announcement. Unknown ids are not an error.
func (s *AnnouncementService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return err
	}
	if id == "" {
		return invalid("id zorunlu")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("announcement deleted", zap.String("announcement_id", id), zap.String("admin_id", session.UserID))
	return nil
}
