package entity

import (
	"context"
	"time"
)

// Stripe Connect account states, derived from account.updated webhooks.
const (
	StripeStatusPending    = "pending"
	StripeStatusActive     = "active"
	StripeStatusRestricted = "restricted"
)

const (
	BankNotConnected = "not_connected"
	BankConnected    = "connected"
)

// Profile is one row per platform user. The ID is the hosted-auth user id,
// so there is no local signup flow.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	Trade        string `json:"trade"` // plumbing, electrical, hvac, power-washing...
	ServiceArea  string `json:"service_area"`
	Phone        string `json:"phone,omitempty"`

	// Branding used by the published micro-site.
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`

	// Payments (Stripe Connect).
	StripeAccountID     string `json:"stripe_account_id,omitempty"`
	StripeAccountStatus string `json:"stripe_account_status"`

	// Payouts (Plaid bank link). Account/routing numbers are stored raw for
	// payout use; the mask is what the UI shows.
	PlaidAccessToken     string `json:"-"`
	PlaidItemID          string `json:"-"`
	BankAccountName      string `json:"bank_account_name,omitempty"`
	BankAccountMask      string `json:"bank_account_mask,omitempty"`
	BankAccountNumber    string `json:"-"`
	BankRoutingNumber    string `json:"-"`
	BankConnectionStatus string `json:"bank_connection_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByStripeAccountID(ctx context.Context, accountID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	UpdateStripeAccount(ctx context.Context, userID, accountID, status string) error
	UpdateStripeStatus(ctx context.Context, userID, status string) error
	UpdateBankLink(ctx context.Context, p *Profile) error
}
