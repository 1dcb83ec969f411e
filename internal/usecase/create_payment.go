package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
)

type CreatePaymentInput struct {
	InvoiceID string `json:"invoice_id"`
}

type CreatePaymentOutput struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreatePaymentUseCase builds the hosted checkout for a public invoice link.
// Deliberately no ownership check: payers are not platform users. The three
// writes (session, payment row, invoice update) are not one transaction; a
// crash in between is healed by webhook reconciliation, not atomicity.
type CreatePaymentUseCase struct {
	Invoices entity.InvoiceRepositoryInterface
	Payments entity.PaymentRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Gateway  PaymentGateway
	AppURL   string
}

func NewCreatePaymentUseCase(
	invoices entity.InvoiceRepositoryInterface,
	payments entity.PaymentRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	gateway PaymentGateway,
	appURL string,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		Invoices: invoices,
		Payments: payments,
		Profiles: profiles,
		Gateway:  gateway,
		AppURL:   appURL,
	}
}

func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	if input.InvoiceID == "" {
		return nil, invalid("invoice_id is required")
	}

	invoice, err := uc.Invoices.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, notFound("invoice not found")
	}

	if invoice.Status == entity.InvoiceStatusPaid {
		return nil, conflict("invoice already paid")
	}
	if invoice.Status == entity.InvoiceStatusCancelled {
		return nil, conflict("invoice cancelled")
	}

	profile, err := uc.Profiles.FindByID(ctx, invoice.UserID)
	if err != nil || profile.StripeAccountID == "" {
		// Generic message: payers never learn about the merchant's account
		// state.
		return nil, upstream("payment processing unavailable")
	}

	account, err := uc.Gateway.GetAccount(ctx, profile.StripeAccountID)
	if err != nil || !account.ChargesEnabled {
		log.Printf("[PAYMENT] account %s cannot accept charges (err=%v)", profile.StripeAccountID, err)
		return nil, upstream("payment processing unavailable")
	}

	session, err := uc.Gateway.CreateCheckoutSession(ctx, stripe.CheckoutSessionInput{
		InvoiceID:            invoice.ID,
		AmountCents:          invoice.AmountCents,
		Currency:             invoice.Currency,
		Description:          fmt.Sprintf("Invoice from %s", profile.BusinessName),
		CustomerEmail:        invoice.CustomerEmail,
		DestinationAccountID: profile.StripeAccountID,
		SuccessURL:           fmt.Sprintf("%s/pay/%s/success", uc.AppURL, invoice.ID),
		CancelURL:            fmt.Sprintf("%s/pay/%s", uc.AppURL, invoice.ID),
	})
	if err != nil {
		return nil, upstream("failed to start checkout: " + err.Error())
	}

	payment := entity.NewPayment(invoice.ID, invoice.UserID, invoice.AmountCents, session.PaymentIntentID, session.ID)
	if err := uc.Payments.Create(ctx, payment); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record payment: " + err.Error()}
	}

	// Only draft bumps to sent; paid/overdue/cancelled were rejected above
	// and sent stays sent.
	newStatus := invoice.Status
	if invoice.Status == entity.InvoiceStatusDraft {
		newStatus = entity.InvoiceStatusSent
	}
	if err := uc.Invoices.SetPaymentIntent(ctx, invoice.ID, session.PaymentIntentID, newStatus); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update invoice: " + err.Error()}
	}

	return &CreatePaymentOutput{CheckoutURL: session.URL, SessionID: session.ID}, nil
}
