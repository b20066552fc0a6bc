package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type AnnouncementHandler struct {
	svc    ports.AnnouncementService
	logger *zap.Logger
}

func NewAnnouncementHandler(svc ports.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, logger: logger}
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Visible *bool  `json:"visible"`
}

type AnnouncementsResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
}

type AnnouncementResponse struct {
	Announcement *domain.Announcement `json:"announcement"`
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, AnnouncementsResponse{Announcements: list})
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[CreateAnnouncementRequest](w, r)

	a, err := h.svc.Create(r.Context(), middleware.SessionFrom(r.Context()), req.Title, req.Content, req.Visible)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, AnnouncementResponse{Announcement: a})
}

// Delete takes the id from the query string: DELETE /api/announcements?id=...
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := h.svc.Delete(r.Context(), middleware.SessionFrom(r.Context()), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
