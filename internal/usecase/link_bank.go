package usecase

import (
	"context"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type LinkBankInput struct {
	UserID      string `json:"-"`
	PublicToken string `json:"public_token"`
	AccountID   string `json:"account_id,omitempty"`
}

type LinkBankOutput struct {
	Status          string `json:"status"`
	BankAccountName string `json:"bank_account_name"`
	BankAccountMask string `json:"bank_account_mask"`
}

// LinkBankUseCase exchanges a Plaid public token and persists everything a
// payout needs on the profile. Any failure before the numbers are fetched is
// fatal to the whole flow; a half-linked account is useless.
type LinkBankUseCase struct {
	Profiles entity.ProfileRepositoryInterface
	Bank     BankGateway
}

func NewLinkBankUseCase(profiles entity.ProfileRepositoryInterface, bank BankGateway) *LinkBankUseCase {
	return &LinkBankUseCase{Profiles: profiles, Bank: bank}
}

func (uc *LinkBankUseCase) Execute(ctx context.Context, input LinkBankInput) (*LinkBankOutput, error) {
	if input.PublicToken == "" {
		return nil, invalid("public_token is required")
	}

	profile, err := uc.Profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, notFound("profile not found")
	}

	exchange, err := uc.Bank.ExchangePublicToken(ctx, input.PublicToken)
	if err != nil {
		return nil, upstream("token exchange failed: " + err.Error())
	}

	accounts, err := uc.Bank.GetAccounts(ctx, exchange.AccessToken)
	if err != nil {
		return nil, upstream("failed to list accounts: " + err.Error())
	}
	if len(accounts) == 0 {
		return nil, upstream("no linked accounts returned")
	}

	selected := accounts[0]
	if input.AccountID != "" {
		found := false
		for _, acct := range accounts {
			if acct.AccountID == input.AccountID {
				selected = acct
				found = true
				break
			}
		}
		if !found {
			return nil, invalid("account_id does not belong to the linked item")
		}
	}

	numbers, err := uc.Bank.GetAuthNumbers(ctx, exchange.AccessToken, selected.AccountID)
	if err != nil {
		return nil, upstream("failed to fetch account numbers: " + err.Error())
	}

	profile.PlaidAccessToken = exchange.AccessToken
	profile.PlaidItemID = exchange.ItemID
	profile.BankAccountName = selected.Name
	profile.BankAccountMask = selected.Mask
	profile.BankAccountNumber = numbers.Account
	profile.BankRoutingNumber = numbers.Routing
	profile.BankConnectionStatus = entity.BankConnected

	if err := uc.Profiles.UpdateBankLink(ctx, profile); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to save bank link: " + err.Error()}
	}

	return &LinkBankOutput{
		Status:          entity.BankConnected,
		BankAccountName: selected.Name,
		BankAccountMask: selected.Mask,
	}, nil
}
