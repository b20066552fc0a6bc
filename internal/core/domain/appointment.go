package domain

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

type Appointment struct {
	ID          string
	UserID      string
	ServiceID   *string
	ScheduledAt time.Time
	Status      AppointmentStatus
	Rating      *int
	CreatedAt   time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)

// Ratable reports whether userID may rate the appointment.
func (a *Appointment) Ratable(userID string) bool {
	return a != nil && a.UserID == userID && a.Status == StatusCompleted
}
