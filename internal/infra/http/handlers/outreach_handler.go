package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

type OutreachHandler struct {
	Targets entity.OutreachRepositoryInterface
}

func NewOutreachHandler(targets entity.OutreachRepositoryInterface) *OutreachHandler {
	return &OutreachHandler{Targets: targets}
}

type CreateTargetRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
}

func (h *OutreachHandler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var req CreateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	userID := middleware.UserID(r.Context())
	if existing, err := h.Targets.FindByUserAndEmail(r.Context(), userID, req.Email); err == nil {
		respondJSON(w, http.StatusOK, map[string]any{"target": existing})
		return
	}

	target, err := entity.NewOutreachTarget(userID, req.Name, req.Email, req.Company)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Targets.Create(r.Context(), target); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create target")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"target": target})
}

func (h *OutreachHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.Targets.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list targets")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"targets": targets})
}
