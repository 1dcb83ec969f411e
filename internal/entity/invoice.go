package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

var ErrInvoiceAlreadyPaid = errors.New("invoice already paid")

type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
}

// Invoice is a billing document owned by a user and payable by a non-user
// customer through a public checkout link. Status reaches "paid" only via
// webhook reconciliation; no other writer sets it.
type Invoice struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	LineItems     []LineItem `json:"line_items"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`

	StripePaymentIntentID string `json:"stripe_payment_intent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInvoice(userID, customerName, customerEmail string, items []LineItem, dueDate *time.Time) (*Invoice, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if customerName == "" {
		return nil, errors.New("customer_name is required")
	}
	if len(items) == 0 {
		return nil, errors.New("at least one line item is required")
	}

	var total int64
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, errors.New("line item quantity must be positive")
		}
		if it.UnitCents < 0 {
			return nil, errors.New("line item unit price must not be negative")
		}
		total += int64(it.Quantity) * it.UnitCents
	}

	return &Invoice{
		ID:            uuid.New().String(),
		UserID:        userID,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		LineItems:     items,
		AmountCents:   total,
		Currency:      "usd",
		Status:        InvoiceStatusDraft,
		DueDate:       dueDate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

type InvoiceRepositoryInterface interface {
	Create(ctx context.Context, inv *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindByUserID(ctx context.Context, userID string) ([]*Invoice, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID, status string) error
	MarkPaid(ctx context.Context, id string, paidDate time.Time) error
}
