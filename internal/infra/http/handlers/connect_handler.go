package handlers

import (
	"fmt"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
)

// ConnectHandler drives Stripe Connect Express onboarding for a profile.
type ConnectHandler struct {
	Profiles entity.ProfileRepositoryInterface
	Stripe   *stripe.Client
	AppURL   string
}

func NewConnectHandler(profiles entity.ProfileRepositoryInterface, stripeClient *stripe.Client, appURL string) *ConnectHandler {
	return &ConnectHandler{Profiles: profiles, Stripe: stripeClient, AppURL: appURL}
}

// Onboard creates the Express account on first call and returns a fresh
// onboarding link every call. Links are single-use and expire; re-calling
// this endpoint is how the user resumes onboarding.
func (h *ConnectHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	profile, err := h.Profiles.FindByID(ctx, userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}

	accountID := profile.StripeAccountID
	if accountID == "" {
		account, err := h.Stripe.CreateExpressAccount(ctx, profile.Email)
		if err != nil {
			middleware.RecordIntegrationError("stripe")
			respondError(w, http.StatusInternalServerError, "payment onboarding unavailable")
			return
		}
		accountID = account.ID

		if err := h.Profiles.UpdateStripeAccount(ctx, userID, accountID, entity.StripeStatusPending); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to save account")
			return
		}
	}

	refreshURL := fmt.Sprintf("%s/settings/payments?refresh=1", h.AppURL)
	returnURL := fmt.Sprintf("%s/settings/payments?complete=1", h.AppURL)
	linkURL, err := h.Stripe.CreateAccountLink(ctx, accountID, refreshURL, returnURL)
	if err != nil {
		middleware.RecordIntegrationError("stripe")
		respondError(w, http.StatusInternalServerError, "payment onboarding unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"onboarding_url": linkURL})
}

// Status re-reads the account from Stripe and syncs the stored status, so
// the UI does not have to wait for an account.updated webhook.
func (h *ConnectHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	profile, err := h.Profiles.FindByID(ctx, userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	if profile.StripeAccountID == "" {
		respondJSON(w, http.StatusOK, map[string]any{
			"connected": false,
			"status":    entity.StripeStatusPending,
		})
		return
	}

	account, err := h.Stripe.GetAccount(ctx, profile.StripeAccountID)
	if err != nil {
		middleware.RecordIntegrationError("stripe")
		respondError(w, http.StatusInternalServerError, "payment provider unavailable")
		return
	}

	status := deriveAccountStatus(account.ChargesEnabled, account.DetailsSubmitted)
	if status != profile.StripeAccountStatus {
		if err := h.Profiles.UpdateStripeStatus(ctx, userID, status); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to save account status")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"connected":       true,
		"status":          status,
		"charges_enabled": account.ChargesEnabled,
		"payouts_enabled": account.PayoutsEnabled,
	})
}
