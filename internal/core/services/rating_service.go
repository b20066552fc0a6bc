package services

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type RatingService struct {
	appointments ports.AppointmentRepository
	logger       *zap.Logger
}

var _ ports.RatingService = (*RatingService)(nil)

func NewRatingService(appointments ports.AppointmentRepository, logger *zap.Logger) *RatingService {
	return &RatingService{appointments: appointments, logger: logger}
}

type ratingInput struct {
	Rating *int `validate:"required,min=1,max=5"`
}

// Rate stores rating on the caller's completed appointment, replacing any
// previous value. The range check runs before the appointment is loaded.
func (s *RatingService) Rate(ctx context.Context, session *domain.Session, appointmentID string, rating *int) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := validate.Struct(ratingInput{Rating: rating}); err != nil {
		return invalid("Geçersiz puan")
	}

	// missing, foreign and not-completed appointments are indistinguishable
	apt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if !apt.Ratable(session.UserID) {
		return domain.NewError(domain.ErrForbidden, "Bu randevuyu puanlayamazsınız")
	}

	if err := s.appointments.UpdateRating(ctx, apt.ID, *rating); err != nil {
		return err
	}
	ratingsRecorded.WithLabelValues(strconv.Itoa(*rating)).Inc()

	s.logger.Info("appointment rated",
		zap.String("appointment_id", apt.ID),
		zap.String("user_id", session.UserID),
		zap.Int("rating", *rating),
	)
	return nil
}
