package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

const (
	DefaultSessionTTL = 24 * time.Hour

	msgInvalidCredentials = "Geçersiz e-posta veya şifre"
)

type AuthService struct {
	userRepo   ports.UserRepository
	sessions   ports.SessionStore
	privateKey *rsa.PrivateKey
	ttl        time.Duration
	logger     *zap.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepo ports.UserRepository,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		privateKey: privateKey,
		ttl:        DefaultSessionTTL,
		logger:     logger,
	}
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Register creates a CUSTOMER account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		authAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, invalid("Geçerli bir e-posta ve en az 8 karakterli şifre zorunlu")
	}

	user, err := s.createUser(ctx, email, password, domain.RoleCustomer)
	if err != nil {
		authAttempts.WithLabelValues("register", "failed").Inc()
		if errors.Is(err, domain.ErrConflict) {
			// don't reveal that the email is taken
			return nil, domain.NewError(domain.ErrConflict, "Kayıt başarısız")
		}
		return nil, err
	}

	token, err := s.issueToken(*user)
	if err != nil {
		return nil, err
	}
	authAttempts.WithLabelValues("register", "success").Inc()
	s.logger.Info("customer registered", zap.String("user_id", user.ID))
	return &ports.AuthResult{Token: token, User: *user}, nil
}

// Login verifies the password and returns a new session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		authAttempts.WithLabelValues("login", "invalid").Inc()
		return nil, invalid("E-posta ve şifre zorunlu")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		authAttempts.WithLabelValues("login", "failed").Inc()
		return nil, domain.NewError(domain.ErrUnauthenticated, msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		authAttempts.WithLabelValues("login", "failed").Inc()
		return nil, domain.NewError(domain.ErrUnauthenticated, msgInvalidCredentials)
	}

	token, err := s.issueToken(*user)
	if err != nil {
		return nil, err
	}
	authAttempts.WithLabelValues("login", "success").Inc()
	return &ports.AuthResult{Token: token, User: *user}, nil
}

// Logout revokes the session's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info("session revoked", zap.String("user_id", session.UserID))
	return nil
}

// EnsureAdmin creates the bootstrap admin account if no user with email
// exists yet. An existing account is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return fmt.Errorf("admin bootstrap: invalid credentials: %w", err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			s.logger.Warn("bootstrap admin email belongs to a non-admin account", zap.String("user_id", existing.ID))
		}
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	user, err := s.createUser(ctx, email, password, domain.RoleAdmin)
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		return err
	}
	if user != nil {
		s.logger.Info("bootstrap admin created", zap.String("user_id", user.ID))
	}
	return nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
