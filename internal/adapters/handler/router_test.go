package handler_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/handler"
	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/services"
	"github.com/AchilleasB/salon-booking/booking-service/internal/mocks"
)

type testApp struct {
	router        http.Handler
	key           *rsa.PrivateKey
	users         *mocks.MockUserRepository
	announcements *mocks.MockAnnouncementRepository
	messages      *mocks.MockMessageRepository
	services      *mocks.MockServiceRepository
	appointments  *mocks.MockAppointmentRepository
	stats         *mocks.MockStatsRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	app := &testApp{
		key:           key,
		users:         mocks.NewMockUserRepository(),
		announcements: mocks.NewMockAnnouncementRepository(),
		messages:      mocks.NewMockMessageRepository(),
		services:      mocks.NewMockServiceRepository(),
		appointments:  mocks.NewMockAppointmentRepository(),
		stats:         &mocks.MockStatsRepository{},
	}
	sessions := mocks.NewMockSessionStore()
	logger := zap.NewNop()

	app.router = handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: []string{"*"},
		Auth:           handler.NewAuthHandler(services.NewAuthService(app.users, sessions, key, logger), logger),
		Announcements:  handler.NewAnnouncementHandler(services.NewAnnouncementService(app.announcements, logger), logger),
		Messages:       handler.NewMessageHandler(services.NewMessagingService(app.messages, logger), logger),
		Services:       handler.NewServiceHandler(services.NewCatalogService(app.services, app.appointments, logger), logger),
		Ratings:        handler.NewRatingHandler(services.NewRatingService(app.appointments, logger), logger),
		Admin:          handler.NewAdminHandler(services.NewDashboardService(app.stats), services.NewUserDirectory(app.users), logger),
		Health:         handler.NewHealthHandler(nil, nil),
		AuthMiddleware: middleware.NewAuthMiddleware(&key.PublicKey, sessions, logger),
		AuthLimiter:    middleware.NewRateLimiter(0.001, 3),
		Logger:         logger,
	})
	return app
}

func (a *testApp) token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@salon.test",
		"role":  string(role),
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(a.key)
	require.NoError(t, err)
	return s
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v), rec.Body.String())
	return v
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Message
}

func TestAnnouncementLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(t, "admin-1", domain.RoleAdmin)

	rec := app.do(t, http.MethodPost, "/api/announcements", admin, `{"title":"Tatil","content":"Yarın kapalıyız"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[handler.AnnouncementResponse](t, rec).Announcement
	assert.True(t, created.Visible)

	rec = app.do(t, http.MethodGet, "/api/announcements", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[handler.AnnouncementsResponse](t, rec).Announcements
	require.Len(t, list, 1)
	assert.Equal(t, "Tatil", list[0].Title)
	assert.True(t, list[0].Visible)

	rec = app.do(t, http.MethodDelete, "/api/announcements?id="+created.ID, admin, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/announcements", "", "")
	assert.Empty(t, decode[handler.AnnouncementsResponse](t, rec).Announcements)
}

func TestServicePriceFormatting(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(t, "admin-1", domain.RoleAdmin)

	rec := app.do(t, http.MethodPost, "/api/admin/services", admin, `{"name":"Saç Kesimi","price":150}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/services", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":150.00`)

	catalog := decode[handler.CatalogResponse](t, rec)
	require.Len(t, catalog.Services, 1)
	assert.Equal(t, "Saç Kesimi", catalog.Services[0].Name)
	assert.Equal(t, "150.00", catalog.Services[0].Price.String())
	assert.Nil(t, catalog.AvgRating)
}

func TestServiceCreate_RejectsNonNumericPrice(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(t, "admin-1", domain.RoleAdmin)

	for _, body := range []string{
		`{"name":"x","price":"150"}`,
		`{"name":"x","price":null}`,
		`{"name":"x"}`,
		`{"name":"x","price":-5}`,
		`not json`,
	} {
		rec := app.do(t, http.MethodPost, "/api/admin/services", admin, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(t, "admin-1", domain.RoleAdmin)

	rec := app.do(t, http.MethodPost, "/api/admin/services", admin, `{"name":"Fön","price":80.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[handler.ServiceResponse](t, rec).Service.ID

	rec = app.do(t, http.MethodPut, "/api/admin/services/"+id, admin, `{"name":"Fön","description":"Uzun saç","price":95}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[handler.ServiceResponse](t, rec).Service
	assert.Equal(t, "95.00", updated.Price.String())
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Uzun saç", *updated.Description)

	rec = app.do(t, http.MethodPut, "/api/admin/services/missing", admin, `{"name":"x","price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/admin/services/"+id, admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/admin/services/"+id, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminEndpoints_RejectNonAdmins(t *testing.T) {
	app := newTestApp(t)
	customer := app.token(t, "cust-1", domain.RoleCustomer)

	requests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/announcements", `{"title":"t","content":"c"}`},
		{http.MethodDelete, "/api/announcements?id=x", ""},
		{http.MethodGet, "/api/admin/services", ""},
		{http.MethodPost, "/api/admin/services", `{"name":"x","price":1}`},
		{http.MethodPut, "/api/admin/services/x", `{"name":"x","price":1}`},
		{http.MethodDelete, "/api/admin/services/x", ""},
		{http.MethodGet, "/api/admin/stats", ""},
		{http.MethodGet, "/api/admin/users", ""},
	}

	for _, r := range requests {
		for _, tok := range []string{"", customer} {
			rec := app.do(t, r.method, r.path, tok, r.body)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", r.method, r.path)
			assert.Equal(t, "Yetkisiz", messageOf(t, rec))
		}
	}

	assert.Zero(t, app.announcements.Len())
	stored, _ := app.services.List(context.Background())
	assert.Empty(t, stored)
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t)
	app.stats.Stats = domain.DashboardStats{TotalUsers: 3, TotalAppointments: 7, TodayAppointments: 2, PendingComplaints: 1}

	rec := app.do(t, http.MethodGet, "/api/admin/stats", app.token(t, "admin-1", domain.RoleAdmin), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalUsers":3,"totalAppointments":7,"todayAppointments":2,"pendingComplaints":1}`, rec.Body.String())
}

func TestMessaging(t *testing.T) {
	app := newTestApp(t)
	app.messages.SeedUser("alice", "alice@salon.test")
	app.messages.SeedUser("bob", "bob@salon.test")
	alice := app.token(t, "alice", domain.RoleCustomer)
	bob := app.token(t, "bob", domain.RoleCustomer)

	rec := app.do(t, http.MethodGet, "/api/messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/messages", alice, `{"receiver":"bob","content":"Merhaba"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/api/messages", alice, `{"receiver":"ghost","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/messages?box=incoming", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	inbox := decode[handler.MessagesResponse](t, rec).Messages
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.DirectionIncoming, inbox[0].Direction)
	assert.Equal(t, "alice@salon.test", inbox[0].Sender.Email)

	rec = app.do(t, http.MethodGet, "/api/messages?box=incoming", alice, "")
	assert.Empty(t, decode[handler.MessagesResponse](t, rec).Messages)

	rec = app.do(t, http.MethodGet, "/api/messages?box=trash", alice, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRating(t *testing.T) {
	app := newTestApp(t)
	app.appointments.Seed(domain.Appointment{ID: "apt-1", UserID: "cust-1", Status: domain.StatusCompleted})
	owner := app.token(t, "cust-1", domain.RoleCustomer)
	other := app.token(t, "cust-2", domain.RoleCustomer)

	for _, body := range []string{`{"rating":0}`, `{"rating":6}`, `{}`} {
		rec := app.do(t, http.MethodPut, "/api/appointments/apt-1/rate", other, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Empty(t, app.appointments.FindByIDCalls, "range is checked before the appointment is loaded")

	rec := app.do(t, http.MethodPut, "/api/appointments/apt-1/rate", other, `{"rating":4}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/appointments/apt-1/rate", "", `{"rating":4}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/appointments/apt-1/rate", owner, `{"rating":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPut, "/api/appointments/apt-1/rate", owner, `{"rating":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, *app.appointments.Rating("apt-1"))

	rec = app.do(t, http.MethodGet, "/api/services", "", "")
	avg := decode[handler.CatalogResponse](t, rec).AvgRating
	require.NotNil(t, avg)
	assert.InDelta(t, 5.0, *avg, 1e-9)
}

func TestAuthFlow_RegisterLogout(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", `{"email":"zeynep@salon.test","password":"guclu-sifre"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[handler.AuthResponse](t, rec)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = app.do(t, http.MethodGet, "/api/messages", res.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/logout", res.Token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/messages", res.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "revoked token is anonymous")
}

func TestLogin_RateLimited(t *testing.T) {
	app := newTestApp(t)
	body := `{"email":"nobody@salon.test","password":"wrong-password"}`

	for i := 0; i < 3; i++ {
		rec := app.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := app.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApp(t)

	tests := []struct{ method, path string }{
		{http.MethodPatch, "/api/announcements"},
		{http.MethodPut, "/api/messages"},
		{http.MethodPost, "/api/services"},
		{http.MethodGet, "/api/appointments/x/rate"},
		{http.MethodPatch, "/api/admin/services/x"},
		{http.MethodPost, "/api/admin/stats"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodPost, "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "Method not allowed", messageOf(t, rec))
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/api/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
