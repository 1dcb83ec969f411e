package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

type ServiceHandler struct {
	Services entity.ServiceRepositoryInterface
}

func NewServiceHandler(services entity.ServiceRepositoryInterface) *ServiceHandler {
	return &ServiceHandler{Services: services}
}

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Unit        string `json:"unit,omitempty"`
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	service, err := entity.NewService(middleware.UserID(r.Context()), req.Name, req.Description, req.PriceCents, req.Unit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Services.Create(r.Context(), service); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create service")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"service": service})
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.Services.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	serviceID := chi.URLParam(r, "id")

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.PriceCents < 0 {
		respondError(w, http.StatusBadRequest, "price_cents must not be negative")
		return
	}

	service := &entity.Service{
		ID:          serviceID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Unit:        req.Unit,
	}
	if err := h.Services.Update(r.Context(), service); err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"service": service})
}

func (h *ServiceHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	serviceID := chi.URLParam(r, "id")

	if err := h.Services.Deactivate(r.Context(), serviceID, userID); err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
