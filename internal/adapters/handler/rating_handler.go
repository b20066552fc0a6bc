package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type RatingHandler struct {
	svc    ports.RatingService
	logger *zap.Logger
}

func NewRatingHandler(svc ports.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{svc: svc, logger: logger}
}

type RateRequest struct {
	Rating *int `json:"rating"`
}

func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[RateRequest](w, r)

	err := h.svc.Rate(r.Context(), middleware.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Rating)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Puan kaydedildi"})
}
