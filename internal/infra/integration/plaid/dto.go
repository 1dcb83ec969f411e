package plaid

type ExchangeResult struct {
	AccessToken string
	ItemID      string
}

type Account struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Mask      string `json:"mask"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
}

type AuthNumbers struct {
	Account string
	Routing string
}

// --- request payloads ---

type linkTokenRequest struct {
	ClientName string `json:"client_name"`
	Language   string `json:"language"`
	User       struct {
		ClientUserID string `json:"client_user_id"`
	} `json:"user"`
	CountryCodes []string `json:"country_codes"`
	Products     []string `json:"products"`
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type accessTokenRequest struct {
	AccessToken string `json:"access_token"`
}

type authRequest struct {
	AccessToken string `json:"access_token"`
	Options     struct {
		AccountIDs []string `json:"account_ids"`
	} `json:"options"`
}

// --- responses ---

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type authResponse struct {
	Numbers struct {
		ACH []struct {
			AccountID string `json:"account_id"`
			Account   string `json:"account"`
			Routing   string `json:"routing"`
		} `json:"ach"`
	} `json:"numbers"`
}

type errorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
