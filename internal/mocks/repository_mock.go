// Package mocks provides in-memory implementations of the port interfaces so
// services and handlers can be tested without PostgreSQL or Redis.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User // by email

	// Call tracking
	FindByEmailCalls []string
	CreateCalls      []domain.User

	// Error injection
	FindByEmailError error
	CreateError      error
	ListError        error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]domain.User)}
}

// SeedUser adds a user for test setup.
func (m *MockUserRepository) SeedUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *MockUserRepository) Create(ctx context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, u)

	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.users[u.Email]; ok {
		return domain.ErrConflict
	}
	m.users[u.Email] = u
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// MockAnnouncementRepository implements ports.AnnouncementRepository.
type MockAnnouncementRepository struct {
	mu            sync.RWMutex
	announcements map[string]domain.Announcement

	// Outbox holds the events written alongside announcements.
	Outbox      []domain.OutboxEvent
	DeleteCalls []string

	CreateError error
	DeleteError error
}

var _ ports.AnnouncementRepository = (*MockAnnouncementRepository)(nil)

func NewMockAnnouncementRepository() *MockAnnouncementRepository {
	return &MockAnnouncementRepository{announcements: make(map[string]domain.Announcement)}
}

func (m *MockAnnouncementRepository) Seed(a domain.Announcement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.announcements[a.ID] = a
}

func (m *MockAnnouncementRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.announcements)
}

func (m *MockAnnouncementRepository) ListVisible(ctx context.Context) ([]domain.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Announcement{}
	for _, a := range m.announcements {
		if a.Visible {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a domain.Announcement, evt *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	m.announcements[a.ID] = a
	if evt != nil {
		m.Outbox = append(m.Outbox, *evt)
	}
	return nil
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.announcements, id)
	return nil
}

// MockMessageRepository implements ports.MessageRepository. Receivers must
// be seeded with SeedUser, mirroring the foreign key on messages.
type MockMessageRepository struct {
	mu       sync.RWMutex
	emails   map[string]string // user id -> email
	messages []domain.Message

	Outbox []domain.OutboxEvent

	CreateError error
	ListError   error
}

var _ ports.MessageRepository = (*MockMessageRepository)(nil)

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{emails: make(map[string]string)}
}

func (m *MockMessageRepository) SeedUser(id, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails[id] = email
}

func (m *MockMessageRepository) ListForUser(ctx context.Context, userID string, box domain.Direction) ([]domain.MessageView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	out := []domain.MessageView{}
	for _, msg := range m.messages {
		if msg.SenderID != userID && msg.ReceiverID != userID {
			continue
		}
		dir := domain.DirectionIncoming
		if msg.SenderID == userID {
			dir = domain.DirectionOutgoing
		}
		if box != "" && box != dir {
			continue
		}
		out = append(out, domain.MessageView{
			Message:   msg,
			Sender:    domain.Participant{Email: m.emails[msg.SenderID]},
			Receiver:  domain.Participant{Email: m.emails[msg.ReceiverID]},
			Direction: dir,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockMessageRepository) Create(ctx context.Context, msg domain.Message, evt domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.emails[msg.ReceiverID]; !ok {
		return domain.NewError(domain.ErrInvalidInput, "Alıcı bulunamadı")
	}
	m.messages = append(m.messages, msg)
	m.Outbox = append(m.Outbox, evt)
	return nil
}

// MockServiceRepository implements ports.ServiceRepository.
type MockServiceRepository struct {
	mu       sync.RWMutex
	services map[string]domain.Service

	CreateError error
}

var _ ports.ServiceRepository = (*MockServiceRepository)(nil)

func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{services: make(map[string]domain.Service)}
}

func (m *MockServiceRepository) Seed(s domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[s.ID] = s
}

func (m *MockServiceRepository) Get(id string) (domain.Service, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.services[id]
	return s, ok
}

func (m *MockServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Service{}
	for _, s := range m.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockServiceRepository) Create(ctx context.Context, s domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	m.services[s.ID] = s
	return nil
}

func (m *MockServiceRepository) Update(ctx context.Context, s domain.Service) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.services[s.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.CreatedAt = existing.CreatedAt
	m.services[s.ID] = s
	return &s, nil
}

func (m *MockServiceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.services[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

// MockAppointmentRepository implements ports.AppointmentRepository.
type MockAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]domain.Appointment

	FindByIDCalls     []string
	UpdateRatingCalls int

	UpdateRatingError error
}

var _ ports.AppointmentRepository = (*MockAppointmentRepository)(nil)

func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{appointments: make(map[string]domain.Appointment)}
}

func (m *MockAppointmentRepository) Seed(a domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[a.ID] = a
}

// Rating returns the stored rating of id, or nil.
func (m *MockAppointmentRepository) Rating(id string) *int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.appointments[id].Rating
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByIDCalls = append(m.FindByIDCalls, id)

	a, ok := m.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *MockAppointmentRepository) UpdateRating(ctx context.Context, id string, rating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRatingCalls++

	if m.UpdateRatingError != nil {
		return m.UpdateRatingError
	}
	a, ok := m.appointments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Rating = &rating
	m.appointments[id] = a
	return nil
}

func (m *MockAppointmentRepository) AverageRating(ctx context.Context) (*float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sum, n int
	for _, a := range m.appointments {
		if a.Rating != nil {
			sum += *a.Rating
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

// MockStatsRepository implements ports.StatsRepository with fixed counts and
// records the day window it was asked for.
type MockStatsRepository struct {
	Stats    domain.DashboardStats
	DayStart time.Time
	DayEnd   time.Time
	Err      error
}

var _ ports.StatsRepository = (*MockStatsRepository)(nil)

func (m *MockStatsRepository) DashboardStats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.DashboardStats, error) {
	m.DayStart, m.DayEnd = dayStart, dayEnd
	if m.Err != nil {
		return nil, m.Err
	}
	s := m.Stats
	return &s, nil
}
