package usecase

import (
	"context"

	"github.com/tradestack/tradestack-api/internal/infra/integration/plaid"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

// TextGenerator is satisfied by textgen.Chain; tests substitute fakes.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string, opts textgen.Options) (string, error)
}

// PaymentGateway is the slice of the Stripe client the payment flow needs.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (*stripe.CheckoutSession, error)
	GetAccount(ctx context.Context, accountID string) (*stripe.Account, error)
}

// BankGateway is the slice of the Plaid client the linking flow needs.
type BankGateway interface {
	ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.ExchangeResult, error)
	GetAccounts(ctx context.Context, accessToken string) ([]plaid.Account, error)
	GetAuthNumbers(ctx context.Context, accessToken, accountID string) (*plaid.AuthNumbers, error)
}
