package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

const msgInvalidService = "Geçersiz veri"

type CatalogService struct {
	services     ports.ServiceRepository
	appointments ports.AppointmentRepository
	logger       *zap.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(
	services ports.ServiceRepository,
	appointments ports.AppointmentRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{services: services, appointments: appointments, logger: logger}
}

// List is the public catalog. AvgRating is the mean over every rated
// appointment in the system, shared by all services.
func (s *CatalogService) List(ctx context.Context) (*domain.Catalog, error) {
	list, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.appointments.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Catalog{Services: list, AvgRating: avg}, nil
}

func (s *CatalogService) AdminList(ctx context.Context, session *domain.Session) ([]domain.Service, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.services.List(ctx)
}

func (s *CatalogService) Create(ctx context.Context, session *domain.Session, in ports.ServiceInput) (*domain.Service, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}

	svc := domain.Service{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		CreatedAt:   time.Now(),
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info("service created", zap.String("service_id", svc.ID), zap.String("name", svc.Name))
	return &svc, nil
}

func (s *CatalogService) Update(ctx context.Context, session *domain.Session, id string, in ports.ServiceInput) (*domain.Service, error) {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, invalid("id zorunlu")
	}
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}

	updated, err := s.services.Update(ctx, domain.Service{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service updated", zap.String("service_id", id))
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if err := requireRole(session, domain.RoleAdmin); err != nil {
		return err
	}
	if id == "" {
		return invalid("id zorunlu")
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("service deleted", zap.String("service_id", id))
	return nil
}

func validateServiceInput(in ports.ServiceInput) error {
	if in.Name == "" || in.Price == nil || in.Price.IsNegative() {
		return invalid(msgInvalidService)
	}
	return nil
}
