package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/http/middleware"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
	"github.com/tradestack/tradestack-api/internal/usecase"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// WebhookHandler receives Stripe events. Everything that confirms or fails a
// payment funnels into the reconcile use case keyed by payment-intent id, so
// the two event families that describe the same charge cannot disagree.
type WebhookHandler struct {
	ReconcileUC   *usecase.ReconcilePaymentUseCase
	Profiles      entity.ProfileRepositoryInterface
	WebhookSecret string
}

func NewWebhookHandler(
	reconcileUC *usecase.ReconcilePaymentUseCase,
	profiles entity.ProfileRepositoryInterface,
	webhookSecret string,
) *WebhookHandler {
	return &WebhookHandler{
		ReconcileUC:   reconcileUC,
		Profiles:      profiles,
		WebhookSecret: webhookSecret,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	event, err := stripe.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		log.Printf("[WEBHOOK] signature rejected: %v", err)
		respondError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	middleware.RecordWebhookEvent(event.Type)

	ctx := r.Context()
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.SessionObject
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			log.Printf("[WEBHOOK] malformed %s object: %v", event.Type, err)
			break
		}
		// Sessions complete for async payment methods before the money
		// moves; only paid sessions reconcile here, the rest wait for
		// their payment_intent event.
		if session.PaymentStatus == "paid" {
			if err := h.ReconcileUC.MarkSucceeded(ctx, session.PaymentIntentID, session.ID); err != nil {
				middleware.RecordReconciliation("error")
				respondError(w, http.StatusInternalServerError, "reconciliation failed")
				return
			}
			middleware.RecordReconciliation("succeeded")
		}

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntentObject
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			log.Printf("[WEBHOOK] malformed %s object: %v", event.Type, err)
			break
		}
		if err := h.ReconcileUC.MarkSucceeded(ctx, intent.ID, ""); err != nil {
			middleware.RecordReconciliation("error")
			respondError(w, http.StatusInternalServerError, "reconciliation failed")
			return
		}
		middleware.RecordReconciliation("succeeded")

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntentObject
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			log.Printf("[WEBHOOK] malformed %s object: %v", event.Type, err)
			break
		}
		if err := h.ReconcileUC.MarkFailed(ctx, intent.ID); err != nil {
			middleware.RecordReconciliation("error")
			respondError(w, http.StatusInternalServerError, "reconciliation failed")
			return
		}
		middleware.RecordReconciliation("failed")

	case "account.updated":
		var account stripe.AccountObject
		if err := json.Unmarshal(event.Data.Object, &account); err != nil {
			log.Printf("[WEBHOOK] malformed %s object: %v", event.Type, err)
			break
		}
		h.updateAccountStatus(ctx, account)

	default:
		log.Printf("[WEBHOOK] ignoring event type %s", event.Type)
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *WebhookHandler) updateAccountStatus(ctx context.Context, account stripe.AccountObject) {
	profile, err := h.Profiles.FindByStripeAccountID(ctx, account.ID)
	if err != nil {
		log.Printf("[WEBHOOK] no profile for account %s", account.ID)
		return
	}

	status := deriveAccountStatus(account.ChargesEnabled, account.DetailsSubmitted)

	if err := h.Profiles.UpdateStripeStatus(ctx, profile.ID, status); err != nil {
		log.Printf("[WEBHOOK] failed to update account status for %s: %v", profile.ID, err)
	}
}

// deriveAccountStatus folds Stripe's two onboarding booleans into the
// profile status. An account can enable charges before the last onboarding
// detail is submitted; it is not active until both hold.
func deriveAccountStatus(chargesEnabled, detailsSubmitted bool) string {
	switch {
	case chargesEnabled && detailsSubmitted:
		return entity.StripeStatusActive
	case detailsSubmitted:
		return entity.StripeStatusRestricted
	default:
		return entity.StripeStatusPending
	}
}
