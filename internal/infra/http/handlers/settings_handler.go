package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

type SettingsHandler struct {
	Settings entity.SettingsRepositoryInterface
}

func NewSettingsHandler(settings entity.SettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	settings, err := h.Settings.FindByUserID(r.Context(), userID)
	if err != nil {
		// Never customized. Return the defaults the generator would use.
		settings = &entity.UserSettings{
			UserID:         userID,
			InitialPrompt:  entity.DefaultInitialPrompt,
			FollowupPrompt: entity.DefaultFollowupPrompt,
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

type UpdateSettingsRequest struct {
	InitialPrompt  string `json:"initial_prompt"`
	FollowupPrompt string `json:"followup_prompt"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	settings := &entity.UserSettings{
		UserID:         middleware.UserID(r.Context()),
		InitialPrompt:  req.InitialPrompt,
		FollowupPrompt: req.FollowupPrompt,
		UpdatedAt:      time.Now(),
	}
	if err := h.Settings.Upsert(r.Context(), settings); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}
