package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type MessageHandler struct {
	svc    ports.MessagingService
	logger *zap.Logger
}

func NewMessageHandler(svc ports.MessagingService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, logger: logger}
}

type SendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type MessagesResponse struct {
	Messages []domain.MessageView `json:"messages"`
}

type SentMessageResponse struct {
	Message *domain.Message `json:"message"`
}

// List returns the caller's messages; ?box=incoming|outgoing narrows them.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	box := domain.Direction(r.URL.Query().Get("box"))

	msgs, err := h.svc.ListForCaller(r.Context(), middleware.SessionFrom(r.Context()), box)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesResponse{Messages: msgs})
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[SendMessageRequest](w, r)

	m, err := h.svc.Send(r.Context(), middleware.SessionFrom(r.Context()), req.Receiver, req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, SentMessageResponse{Message: m})
}
