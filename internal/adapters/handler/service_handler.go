package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/adapters/middleware"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
	"github.com/AchilleasB/salon-booking/booking-service/internal/core/ports"
)

type ServiceHandler struct {
	svc    ports.CatalogService
	logger *zap.Logger
}

func NewServiceHandler(svc ports.CatalogService, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{svc: svc, logger: logger}
}

type ServiceRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
}

// ServiceDTO renders price as a JSON number with two decimals.
type ServiceDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Price       json.Number `json:"price"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type CatalogResponse struct {
	Services  []ServiceDTO `json:"services"`
	AvgRating *float64     `json:"avgRating"`
}

type ServicesResponse struct {
	Services []ServiceDTO `json:"services"`
}

type ServiceResponse struct {
	Service ServiceDTO `json:"service"`
}

func toServiceDTO(s domain.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       json.Number(s.Price.StringFixed(2)),
		CreatedAt:   s.CreatedAt,
	}
}

func toServiceDTOs(list []domain.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceDTO(s))
	}
	return out
}

// parsePrice accepts only a JSON number literal; strings, booleans and
// null are rejected.
func parsePrice(raw json.RawMessage) *decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil
	}
	return &d
}

func (req ServiceRequest) input() ports.ServiceInput {
	return ports.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       parsePrice(req.Price),
	}
}

// List is the public catalog with the global average rating.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogResponse{
		Services:  toServiceDTOs(catalog.Services),
		AvgRating: catalog.AvgRating,
	})
}

func (h *ServiceHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.AdminList(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ServicesResponse{Services: toServiceDTOs(list)})
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[ServiceRequest](w, r)

	svc, err := h.svc.Create(r.Context(), middleware.SessionFrom(r.Context()), req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ServiceResponse{Service: toServiceDTO(*svc)})
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[ServiceRequest](w, r)

	svc, err := h.svc.Update(r.Context(), middleware.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ServiceResponse{Service: toServiceDTO(*svc)})
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
