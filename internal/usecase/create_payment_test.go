package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
)

func newCreatePaymentFixture() (*CreatePaymentUseCase, *MockInvoiceRepository, *MockPaymentRepository, *MockProfileRepository, *MockPaymentGateway) {
	invoices := new(MockInvoiceRepository)
	payments := new(MockPaymentRepository)
	profiles := new(MockProfileRepository)
	gateway := new(MockPaymentGateway)
	uc := NewCreatePaymentUseCase(invoices, payments, profiles, gateway, "https://app.tradestack.test")
	return uc, invoices, payments, profiles, gateway
}

func draftInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:          "inv-1",
		UserID:      "user-1",
		AmountCents: 25000,
		Currency:    "usd",
		Status:      entity.InvoiceStatusDraft,
	}
}

func TestCreatePayment_HappyPath(t *testing.T) {
	uc, invoices, payments, profiles, gateway := newCreatePaymentFixture()

	invoices.On("FindByID", mock.Anything, "inv-1").Return(draftInvoice(), nil)
	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{
		ID:              "user-1",
		BusinessName:    "Ace Plumbing",
		StripeAccountID: "acct_123",
	}, nil)
	gateway.On("GetAccount", mock.Anything, "acct_123").Return(&stripe.Account{
		ID:             "acct_123",
		ChargesEnabled: true,
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(in stripe.CheckoutSessionInput) bool {
		return in.InvoiceID == "inv-1" &&
			in.AmountCents == 25000 &&
			in.DestinationAccountID == "acct_123" &&
			in.SuccessURL == "https://app.tradestack.test/pay/inv-1/success"
	})).Return(&stripe.CheckoutSession{
		ID:              "cs_1",
		URL:             "https://checkout.stripe.test/cs_1",
		PaymentIntentID: "pi_1",
	}, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.InvoiceID == "inv-1" && p.StripePaymentIntentID == "pi_1" && p.Status == entity.PaymentStatusPending
	})).Return(nil)
	invoices.On("SetPaymentIntent", mock.Anything, "inv-1", "pi_1", entity.InvoiceStatusSent).Return(nil)

	output, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/cs_1", output.CheckoutURL)
	assert.Equal(t, "cs_1", output.SessionID)
	invoices.AssertExpectations(t)
	payments.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCreatePayment_AlreadyPaid(t *testing.T) {
	uc, invoices, payments, _, _ := newCreatePaymentFixture()

	paid := draftInvoice()
	paid.Status = entity.InvoiceStatusPaid
	invoices.On("FindByID", mock.Anything, "inv-1").Return(paid, nil)

	output, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	assert.Nil(t, output)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePayment_Cancelled(t *testing.T) {
	uc, invoices, _, _, _ := newCreatePaymentFixture()

	cancelled := draftInvoice()
	cancelled.Status = entity.InvoiceStatusCancelled
	invoices.On("FindByID", mock.Anything, "inv-1").Return(cancelled, nil)

	_, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
}

func TestCreatePayment_MerchantNotOnboarded(t *testing.T) {
	uc, invoices, payments, profiles, _ := newCreatePaymentFixture()

	invoices.On("FindByID", mock.Anything, "inv-1").Return(draftInvoice(), nil)
	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1"}, nil)

	_, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	// The payer-facing message must not leak the merchant's account state.
	assert.EqualError(t, err, "payment processing unavailable")
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePayment_ChargesDisabled(t *testing.T) {
	uc, invoices, _, profiles, gateway := newCreatePaymentFixture()

	invoices.On("FindByID", mock.Anything, "inv-1").Return(draftInvoice(), nil)
	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{
		ID:              "user-1",
		StripeAccountID: "acct_123",
	}, nil)
	gateway.On("GetAccount", mock.Anything, "acct_123").Return(&stripe.Account{
		ID:             "acct_123",
		ChargesEnabled: false,
	}, nil)

	_, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	assert.EqualError(t, err, "payment processing unavailable")
}

func TestCreatePayment_SentInvoiceStaysSent(t *testing.T) {
	uc, invoices, payments, profiles, gateway := newCreatePaymentFixture()

	sent := draftInvoice()
	sent.Status = entity.InvoiceStatusSent
	invoices.On("FindByID", mock.Anything, "inv-1").Return(sent, nil)
	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{
		ID:              "user-1",
		StripeAccountID: "acct_123",
	}, nil)
	gateway.On("GetAccount", mock.Anything, "acct_123").Return(&stripe.Account{ChargesEnabled: true}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(&stripe.CheckoutSession{
		ID:              "cs_2",
		URL:             "https://checkout.stripe.test/cs_2",
		PaymentIntentID: "pi_2",
	}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	invoices.On("SetPaymentIntent", mock.Anything, "inv-1", "pi_2", entity.InvoiceStatusSent).Return(nil)

	_, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "inv-1"})

	assert.NoError(t, err)
	invoices.AssertExpectations(t)
}

func TestCreatePayment_InvoiceNotFound(t *testing.T) {
	uc, invoices, _, _, _ := newCreatePaymentFixture()

	invoices.On("FindByID", mock.Anything, "missing").Return(nil, errors.New("no rows"))

	_, err := uc.Execute(context.Background(), CreatePaymentInput{InvoiceID: "missing"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}
