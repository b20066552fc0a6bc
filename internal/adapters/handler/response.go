package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

const (
	maxBodyBytes = 1 << 20

	msgMethodNotAllowed = "Method not allowed"
	msgNotFound         = "Kayıt bulunamadı"
	msgInternal         = "Sunucu hatası"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeError maps domain error kinds to status codes. Unclassified errors
// are logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}

	var de *domain.Error
	switch {
	case errors.As(err, &de):
		writeMessage(w, status, de.Message)
	case status == http.StatusNotFound:
		writeMessage(w, status, msgNotFound)
	case status == http.StatusInternalServerError:
		logger.Error("request failed", zap.Error(err))
		writeMessage(w, status, msgInternal)
	default:
		writeMessage(w, status, http.StatusText(status))
	}
}

// decodeBody decodes a JSON body into a T. A missing or malformed body
// yields the zero value so that authorization still runs before
// field validation.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) T {
	var v T
	if r.Body == nil {
		return v
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&v); err != nil {
		var zero T
		return zero
	}
	return v
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}
