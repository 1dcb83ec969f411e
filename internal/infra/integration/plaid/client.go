package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Plaid JSON API. Credentials ride inside every request
// body, which is how Plaid wants them.
type Client struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
}

func NewClient(clientID, secret, baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateLinkToken produces the short-lived token the frontend hands to Plaid
// Link to start the flow.
func (c *Client) CreateLinkToken(ctx context.Context, userID, businessName string) (string, error) {
	payload := linkTokenRequest{
		ClientName:   businessName,
		Language:     "en",
		CountryCodes: []string{"US"},
		Products:     []string{"auth"},
	}
	payload.User.ClientUserID = userID

	var resp linkTokenResponse
	if err := c.do(ctx, "/link/token/create", payload, &resp); err != nil {
		return "", err
	}
	return resp.LinkToken, nil
}

// ExchangePublicToken swaps the public token from Link for the long-lived
// access token plus item id.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error) {
	var resp exchangeResponse
	err := c.do(ctx, "/item/public_token/exchange", exchangeRequest{PublicToken: publicToken}, &resp)
	if err != nil {
		return nil, err
	}
	return &ExchangeResult{AccessToken: resp.AccessToken, ItemID: resp.ItemID}, nil
}

// GetAccounts lists the accounts reachable through an access token.
func (c *Client) GetAccounts(ctx context.Context, accessToken string) ([]Account, error) {
	var resp accountsResponse
	if err := c.do(ctx, "/accounts/get", accessTokenRequest{AccessToken: accessToken}, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// GetAuthNumbers fetches account and routing numbers for one specific
// account. Payouts cannot proceed without them, so callers treat failure
// here as fatal to the whole linking flow.
func (c *Client) GetAuthNumbers(ctx context.Context, accessToken, accountID string) (*AuthNumbers, error) {
	payload := authRequest{AccessToken: accessToken}
	payload.Options.AccountIDs = []string{accountID}

	var resp authResponse
	if err := c.do(ctx, "/auth/get", payload, &resp); err != nil {
		return nil, err
	}
	for _, ach := range resp.Numbers.ACH {
		if ach.AccountID == accountID {
			return &AuthNumbers{Account: ach.Account, Routing: ach.Routing}, nil
		}
	}
	return nil, fmt.Errorf("no ACH numbers returned for account %s", accountID)
}

func (c *Client) do(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(withCredentials(payload, c.clientID, c.secret))
	if err != nil {
		return fmt.Errorf("failed to marshal plaid request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("plaid request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.ErrorCode != "" {
			return fmt.Errorf("plaid error %s: %s", apiErr.ErrorCode, apiErr.ErrorMessage)
		}
		return fmt.Errorf("plaid error (status %d)", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse plaid response: %w", err)
	}
	return nil
}

// withCredentials re-marshals the payload with client_id/secret merged in,
// keeping the per-call request structs free of credential fields.
func withCredentials(payload interface{}, clientID, secret string) map[string]interface{} {
	raw, _ := json.Marshal(payload)
	merged := map[string]interface{}{}
	json.Unmarshal(raw, &merged)
	merged["client_id"] = clientID
	merged["secret"] = secret
	return merged
}
