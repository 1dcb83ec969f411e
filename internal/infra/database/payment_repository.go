package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	query := `
		INSERT INTO payments (
			id, invoice_id, user_id, amount_cents, status,
			stripe_payment_intent_id, stripe_session_id, metadata,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.DB.ExecContext(ctx, query,
		p.ID, p.InvoiceID, p.UserID, p.AmountCents, p.Status,
		p.StripePaymentIntentID, nullString(p.StripeSessionID), metadata,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PaymentRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, user_id, amount_cents, status,
		       stripe_payment_intent_id, stripe_session_id, metadata,
		       created_at, updated_at
		FROM payments
		WHERE stripe_payment_intent_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var p entity.Payment
	var sessionID sql.NullString
	var metadata []byte

	err := r.DB.QueryRowContext(ctx, query, paymentIntentID).Scan(
		&p.ID, &p.InvoiceID, &p.UserID, &p.AmountCents, &p.Status,
		&p.StripePaymentIntentID, &sessionID, &metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	p.StripeSessionID = sessionID.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string, metadata map[string]string) error {
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	query := `UPDATE payments SET status = $2, metadata = $3, updated_at = NOW() WHERE id = $1`
	_, err = r.DB.ExecContext(ctx, query, id, status, encoded)
	return err
}
