package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `
	id, email, business_name, trade, service_area, phone,
	primary_color, secondary_color, font_family,
	stripe_account_id, stripe_account_status,
	plaid_access_token, plaid_item_id,
	bank_account_name, bank_account_mask, bank_account_number, bank_routing_number,
	bank_connection_status, created_at, updated_at
`

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ProfileRepository) FindByStripeAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE stripe_account_id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, accountID))
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles SET
			business_name = $2, trade = $3, service_area = $4, phone = $5,
			primary_color = $6, secondary_color = $7, font_family = $8,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.BusinessName, p.Trade, p.ServiceArea, p.Phone,
		p.PrimaryColor, p.SecondaryColor, p.FontFamily,
	)
	return err
}

func (r *ProfileRepository) UpdateStripeAccount(ctx context.Context, userID, accountID, status string) error {
	query := `
		UPDATE profiles
		SET stripe_account_id = $2, stripe_account_status = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, userID, accountID, status)
	return err
}

func (r *ProfileRepository) UpdateStripeStatus(ctx context.Context, userID, status string) error {
	query := `UPDATE profiles SET stripe_account_status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID, status)
	return err
}

func (r *ProfileRepository) UpdateBankLink(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles SET
			plaid_access_token = $2, plaid_item_id = $3,
			bank_account_name = $4, bank_account_mask = $5,
			bank_account_number = $6, bank_routing_number = $7,
			bank_connection_status = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.PlaidAccessToken, p.PlaidItemID,
		p.BankAccountName, p.BankAccountMask,
		p.BankAccountNumber, p.BankRoutingNumber,
		p.BankConnectionStatus,
	)
	return err
}

func (r *ProfileRepository) scanOne(row *sql.Row) (*entity.Profile, error) {
	var p entity.Profile
	var phone, primary, secondary, font sql.NullString
	var stripeID, plaidToken, plaidItem sql.NullString
	var bankName, bankMask, bankNumber, bankRouting sql.NullString

	err := row.Scan(
		&p.ID, &p.Email, &p.BusinessName, &p.Trade, &p.ServiceArea, &phone,
		&primary, &secondary, &font,
		&stripeID, &p.StripeAccountStatus,
		&plaidToken, &plaidItem,
		&bankName, &bankMask, &bankNumber, &bankRouting,
		&p.BankConnectionStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Phone = phone.String
	p.PrimaryColor = primary.String
	p.SecondaryColor = secondary.String
	p.FontFamily = font.String
	p.StripeAccountID = stripeID.String
	p.PlaidAccessToken = plaidToken.String
	p.PlaidItemID = plaidItem.String
	p.BankAccountName = bankName.String
	p.BankAccountMask = bankMask.String
	p.BankAccountNumber = bankNumber.String
	p.BankRoutingNumber = bankRouting.String

	return &p, nil
}
