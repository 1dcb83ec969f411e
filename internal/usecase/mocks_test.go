package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tradestack/tradestack-api/internal/entity"
	"github.com/tradestack/tradestack-api/internal/infra/integration/plaid"
	"github.com/tradestack/tradestack-api/internal/infra/integration/stripe"
	"github.com/tradestack/tradestack-api/internal/infra/textgen"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByStripeAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) UpdateStripeAccount(ctx context.Context, userID, accountID, status string) error {
	return m.Called(ctx, userID, accountID, status).Error(0)
}

func (m *MockProfileRepository) UpdateStripeStatus(ctx context.Context, userID, status string) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *MockProfileRepository) UpdateBankLink(ctx context.Context, p *entity.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockLeadMessageRepository struct {
	mock.Mock
}

func (m *MockLeadMessageRepository) Create(ctx context.Context, msg *entity.LeadMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockLeadMessageRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeadMessage), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s *entity.UserSettings) error {
	return m.Called(ctx, s).Error(0)
}

type MockAdTemplateRepository struct {
	mock.Mock
}

func (m *MockAdTemplateRepository) Create(ctx context.Context, t *entity.AdTemplate) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockAdTemplateRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.AdTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AdTemplate), args.Error(1)
}

type MockOutreachRepository struct {
	mock.Mock
}

func (m *MockOutreachRepository) Create(ctx context.Context, t *entity.OutreachTarget) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockOutreachRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.OutreachTarget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OutreachTarget), args.Error(1)
}

func (m *MockOutreachRepository) FindByUserAndEmail(ctx context.Context, userID, email string) (*entity.OutreachTarget, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OutreachTarget), args.Error(1)
}

func (m *MockOutreachRepository) UpdateStatus(ctx context.Context, id, status, lastMessage string) error {
	return m.Called(ctx, id, status, lastMessage).Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID, status string) error {
	return m.Called(ctx, id, paymentIntentID, status).Error(0)
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) error {
	return m.Called(ctx, id, paidDate).Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id, status string, metadata map[string]string) error {
	return m.Called(ctx, id, status, metadata).Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) GetAccount(ctx context.Context, accountID string) (*stripe.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Account), args.Error(1)
}

type MockBankGateway struct {
	mock.Mock
}

func (m *MockBankGateway) ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.ExchangeResult, error) {
	args := m.Called(ctx, publicToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plaid.ExchangeResult), args.Error(1)
}

func (m *MockBankGateway) GetAccounts(ctx context.Context, accessToken string) ([]plaid.Account, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]plaid.Account), args.Error(1)
}

func (m *MockBankGateway) GetAuthNumbers(ctx context.Context, accessToken, accountID string) (*plaid.AuthNumbers, error) {
	args := m.Called(ctx, accessToken, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plaid.AuthNumbers), args.Error(1)
}

// flakyGenerator fails its first call, then succeeds.
type flakyGenerator struct {
	failFirst bool
	response  string
	calls     int
}

func (f *flakyGenerator) Generate(ctx context.Context, system, prompt string, opts textgen.Options) (string, error) {
	f.calls++
	if f.failFirst && f.calls == 1 {
		return "", errors.New("provider timeout")
	}
	return f.response, nil
}

// stubGenerator returns a canned response or error without any provider.
type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, system, prompt string, opts textgen.Options) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
