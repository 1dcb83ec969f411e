package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// Payment is a local cache of a Stripe payment-intent. Stripe is the source
// of truth; webhook reconciliation drives this row into a terminal state and
// never moves it back.
type Payment struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoice_id"`
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`

	StripePaymentIntentID string            `json:"stripe_payment_intent_id"`
	StripeSessionID       string            `json:"stripe_session_id,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPayment(invoiceID, userID string, amountCents int64, paymentIntentID, sessionID string) *Payment {
	return &Payment{
		ID:                    uuid.New().String(),
		InvoiceID:             invoiceID,
		UserID:                userID,
		AmountCents:           amountCents,
		Status:                PaymentStatusPending,
		StripePaymentIntentID: paymentIntentID,
		StripeSessionID:       sessionID,
		Metadata:              map[string]string{},
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}
}

// Terminal reports whether the payment reached a state the reconciler must
// not move it out of.
func (p *Payment) Terminal() bool {
	switch p.Status {
	case PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *Payment) error
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*Payment, error)
	UpdateStatus(ctx context.Context, id, status string, metadata map[string]string) error
}
