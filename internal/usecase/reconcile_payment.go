package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tradestack/tradestack-api/internal/entity"
)

// ReconcilePaymentUseCase is the single entry point that moves a payment to
// a terminal state. Both checkout.session.completed and the payment_intent
// events land here, keyed by payment-intent id, so duplicate or out-of-order
// delivery converges on the same rows and values.
type ReconcilePaymentUseCase struct {
	Payments entity.PaymentRepositoryInterface
	Invoices entity.InvoiceRepositoryInterface
}

func NewReconcilePaymentUseCase(
	payments entity.PaymentRepositoryInterface,
	invoices entity.InvoiceRepositoryInterface,
) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{Payments: payments, Invoices: invoices}
}

// MarkSucceeded records a confirmed payment: Payment -> succeeded, Invoice ->
// paid with today's date. Safe to call any number of times for the same
// intent; re-deliveries rewrite the same terminal values.
func (uc *ReconcilePaymentUseCase) MarkSucceeded(ctx context.Context, paymentIntentID, sessionID string) error {
	payment, err := uc.Payments.FindByPaymentIntentID(ctx, paymentIntentID)
	if errors.Is(err, entity.ErrPaymentNotFound) {
		// A session we never created a payment for. Log and swallow so the
		// provider does not keep retrying an event we can never match.
		log.Printf("[RECONCILE] no payment for intent %s", paymentIntentID)
		return nil
	}
	if err != nil {
		// Transient failure. Surface it so the webhook responds non-2xx and
		// the provider redelivers.
		return err
	}

	metadata := payment.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	if sessionID != "" {
		metadata["checkout_session_id"] = sessionID
		metadata["checkout_session_status"] = "complete"
	}

	if err := uc.Payments.UpdateStatus(ctx, payment.ID, entity.PaymentStatusSucceeded, metadata); err != nil {
		return err
	}

	invoice, err := uc.Invoices.FindByID(ctx, payment.InvoiceID)
	if errors.Is(err, entity.ErrInvoiceNotFound) {
		log.Printf("[RECONCILE] payment %s references missing invoice %s", payment.ID, payment.InvoiceID)
		return nil
	}
	if err != nil {
		return err
	}

	if err := uc.Invoices.MarkPaid(ctx, invoice.ID, time.Now()); err != nil {
		return err
	}

	log.Printf("[RECONCILE] invoice %s paid (intent %s)", invoice.ID, paymentIntentID)
	return nil
}

// MarkFailed records a failed intent. The invoice stays in its current
// status so the payer can retry with a fresh checkout.
func (uc *ReconcilePaymentUseCase) MarkFailed(ctx context.Context, paymentIntentID string) error {
	payment, err := uc.Payments.FindByPaymentIntentID(ctx, paymentIntentID)
	if errors.Is(err, entity.ErrPaymentNotFound) {
		log.Printf("[RECONCILE] no payment for failed intent %s", paymentIntentID)
		return nil
	}
	if err != nil {
		return err
	}

	// Never move a payment out of a terminal state; failure events can
	// arrive late for an intent that was retried inside the same session.
	if payment.Terminal() {
		return nil
	}

	return uc.Payments.UpdateStatus(ctx, payment.ID, entity.PaymentStatusFailed, payment.Metadata)
}
