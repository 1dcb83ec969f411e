package handlers

import (
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
)

type TemplateHandler struct {
	Templates entity.AdTemplateRepositoryInterface
}

func NewTemplateHandler(templates entity.AdTemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{Templates: templates}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"templates": templates})
}
