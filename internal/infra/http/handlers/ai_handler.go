package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

type AIHandler struct {
	GenerateAdUC       *usecase.GenerateAdUseCase
	GenerateMessageUC  *usecase.GenerateMessageUseCase
	GenerateOutreachUC *usecase.GenerateOutreachUseCase
}

func NewAIHandler(
	adUC *usecase.GenerateAdUseCase,
	messageUC *usecase.GenerateMessageUseCase,
	outreachUC *usecase.GenerateOutreachUseCase,
) *AIHandler {
	return &AIHandler{
		GenerateAdUC:       adUC,
		GenerateMessageUC:  messageUC,
		GenerateOutreachUC: outreachUC,
	}
}

func (h *AIHandler) GenerateAd(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateAdInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.UserID = middleware.UserID(r.Context())

	output, err := h.GenerateAdUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordGeneration("ad", "error")
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordGeneration("ad", "ok")
	respondJSON(w, http.StatusCreated, output)
}

func (h *AIHandler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.UserID = middleware.UserID(r.Context())

	output, err := h.GenerateMessageUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordGeneration("message", "error")
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordGeneration("message", "ok")
	respondJSON(w, http.StatusCreated, output)
}

func (h *AIHandler) GenerateOutreach(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.UserID = middleware.UserID(r.Context())

	output, err := h.GenerateOutreachUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordGeneration("outreach", "error")
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordGeneration("outreach", "ok")
	respondJSON(w, http.StatusOK, output)
}
