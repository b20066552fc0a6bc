package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

// AdminHandler serves the back-office read endpoints.
type AdminHandler struct {
	dashboard ports.DashboardService
	users     ports.UserDirectory
	logger    *zap.Logger
}

func NewAdminHandler(dashboard ports.DashboardService, users ports.UserDirectory, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, users: users, logger: logger}
}

type UsersResponse struct {
	Users []domain.User `json:"users"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}
