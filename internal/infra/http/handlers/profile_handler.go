package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

type ProfileHandler struct {
	Profiles entity.ProfileRepositoryInterface
}

func NewProfileHandler(profiles entity.ProfileRepositoryInterface) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.FindByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

type UpdateProfileRequest struct {
	BusinessName   string `json:"business_name"`
	Trade          string `json:"trade"`
	ServiceArea    string `json:"service_area"`
	Phone          string `json:"phone,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.BusinessName == "" {
		respondError(w, http.StatusBadRequest, "business_name is required")
		return
	}

	profile, err := h.Profiles.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}

	profile.BusinessName = req.BusinessName
	profile.Trade = req.Trade
	profile.ServiceArea = req.ServiceArea
	profile.Phone = req.Phone
	profile.PrimaryColor = req.PrimaryColor
	profile.SecondaryColor = req.SecondaryColor
	profile.FontFamily = req.FontFamily

	if err := h.Profiles.Update(r.Context(), profile); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}
