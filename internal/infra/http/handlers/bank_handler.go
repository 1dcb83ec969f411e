package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/infra/integration/plaid"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

type BankHandler struct {
	Profiles   entity.ProfileRepositoryInterface
	Plaid      *plaid.Client
	LinkBankUC *usecase.LinkBankUseCase
}

func NewBankHandler(
	profiles entity.ProfileRepositoryInterface,
	plaidClient *plaid.Client,
	linkBankUC *usecase.LinkBankUseCase,
) *BankHandler {
	return &BankHandler{Profiles: profiles, Plaid: plaidClient, LinkBankUC: linkBankUC}
}

func (h *BankHandler) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	businessName := "TradeStack"
	if profile, err := h.Profiles.FindByID(r.Context(), userID); err == nil && profile.BusinessName != "" {
		businessName = profile.BusinessName
	}

	token, err := h.Plaid.CreateLinkToken(r.Context(), userID, businessName)
	if err != nil {
		middleware.RecordIntegrationError("plaid")
		respondError(w, http.StatusInternalServerError, "bank linking unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"link_token": token})
}

func (h *BankHandler) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	var input usecase.LinkBankInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.UserID = middleware.UserID(r.Context())

	output, err := h.LinkBankUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("plaid")
		}
		respondUseCaseError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

func (h *BankHandler) Status(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.FindByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":            profile.BankConnectionStatus,
		"bank_account_name": profile.BankAccountName,
		"bank_account_mask": profile.BankAccountMask,
	})
}
