package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	query := `
		INSERT INTO invoices (
			id, user_id, customer_name, customer_email, line_items,
			amount_cents, currency, status, due_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.DB.ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.CustomerName, nullString(inv.CustomerEmail), items,
		inv.AmountCents, inv.Currency, inv.Status, inv.DueDate, inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := invoiceSelect + ` WHERE id = $1`
	return scanInvoice(r.DB.QueryRowContext(ctx, query, id))
}

func (r *InvoiceRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	query := invoiceSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoiceRows(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID, status string) error {
	query := `
		UPDATE invoices
		SET stripe_payment_intent_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, paymentIntentID, status)
	return err
}

// MarkPaid is the only writer that sets status = paid; it is reached solely
// through verified webhook reconciliation.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) error {
	query := `UPDATE invoices SET status = 'paid', paid_date = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, paidDate)
	return err
}

const invoiceSelect = `
	SELECT id, user_id, customer_name, customer_email, line_items,
	       amount_cents, currency, status, due_date, paid_date,
	       stripe_payment_intent_id, created_at, updated_at
	FROM invoices
`

type invoiceScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row *sql.Row) (*entity.Invoice, error) {
	inv, err := scanInvoiceFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrInvoiceNotFound
	}
	return inv, err
}

func scanInvoiceRows(rows *sql.Rows) (*entity.Invoice, error) {
	return scanInvoiceFrom(rows)
}

func scanInvoiceFrom(s invoiceScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerEmail, intentID sql.NullString
	var dueDate, paidDate sql.NullTime
	var items []byte

	err := s.Scan(
		&inv.ID, &inv.UserID, &inv.CustomerName, &customerEmail, &items,
		&inv.AmountCents, &inv.Currency, &inv.Status, &dueDate, &paidDate,
		&intentID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.LineItems); err != nil {
			return nil, fmt.Errorf("failed to decode line items: %w", err)
		}
	}
	inv.CustomerEmail = customerEmail.String
	inv.StripePaymentIntentID = intentID.String
	if dueDate.Valid {
		inv.DueDate = &dueDate.Time
	}
	if paidDate.Valid {
		inv.PaidDate = &paidDate.Time
	}
	return &inv, nil
}
