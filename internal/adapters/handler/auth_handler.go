package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(auth ports.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: auth, logger: logger}
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[CredentialsRequest](w, r)

	res, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Token: res.Token, User: res.User})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[CredentialsRequest](w, r)

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: res.Token, User: res.User})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.SessionFrom(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
