package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/mocks"
)

func generateTestKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return privateKey, &privateKey.PublicKey
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-123",
		"email": "test@salon.test",
		"role":  role,
		"jti":   "token-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

// captureSession runs the middleware and returns the session seen by the
// next handler.
func captureSession(t *testing.T, mw *middleware.AuthMiddleware, authHeader string) *domain.Session {
	t.Helper()
	var got *domain.Session
	called := false
	h := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got = middleware.SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, called, "request must always reach the next handler")
	assert.Equal(t, http.StatusOK, rec.Code)
	return got
}

func TestAuthenticate_ValidToken(t *testing.T) {
	priv, pub := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(pub, mocks.NewMockSessionStore(), zap.NewNop())

	s := captureSession(t, mw, "Bearer "+signToken(t, priv, validClaims("ADMIN")))
	require.NotNil(t, s)
	assert.Equal(t, "user-123", s.UserID)
	assert.Equal(t, domain.RoleAdmin, s.Role)
	assert.Equal(t, "token-1", s.TokenID)
}

func TestAuthenticate_AnonymousFallthrough(t *testing.T) {
	priv, pub := generateTestKeys(t)
	otherPriv, _ := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(pub, mocks.NewMockSessionStore(), zap.NewNop())

	expired := validClaims("CUSTOMER")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noJTI := validClaims("CUSTOMER")
	delete(noJTI, "jti")

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims("ADMIN")).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"wrong_scheme", "Basic abc"},
		{"garbage_token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + signToken(t, priv, expired)},
		{"missing_jti", "Bearer " + signToken(t, priv, noJTI)},
		{"foreign_key", "Bearer " + signToken(t, otherPriv, validClaims("ADMIN"))},
		{"hmac_token", "Bearer " + hs256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, captureSession(t, mw, tt.header))
		})
	}
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	priv, pub := generateTestKeys(t)
	sessions := mocks.NewMockSessionStore()
	require.NoError(t, sessions.Revoke(context.Background(), "token-1", time.Hour))
	mw := middleware.NewAuthMiddleware(pub, sessions, zap.NewNop())

	assert.Nil(t, captureSession(t, mw, "Bearer "+signToken(t, priv, validClaims("ADMIN"))))
}

func TestAuthenticate_RevocationStoreDown(t *testing.T) {
	priv, pub := generateTestKeys(t)
	sessions := mocks.NewMockSessionStore()
	sessions.IsRevokedError = errors.New("redis down")
	mw := middleware.NewAuthMiddleware(pub, sessions, zap.NewNop())

	s := captureSession(t, mw, "Bearer "+signToken(t, priv, validClaims("CUSTOMER")))
	require.NotNil(t, s, "signature-valid tokens pass while the store is down")
	assert.Equal(t, domain.RoleCustomer, s.Role)
}
