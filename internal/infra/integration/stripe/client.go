package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin wrapper over the Stripe REST API. Stripe speaks
// form-encoded requests, not JSON, so every call builds url.Values.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		baseURL:   "https://api.stripe.com/v1",
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL exists for tests pointing at a local httptest server.
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = baseURL
	return c
}

// CreateCheckoutSession creates a hosted checkout for a destination charge:
// funds settle directly on the connected account, the platform never
// custodies them.
func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", input.InvoiceID)
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", input.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", input.Description)
	form.Set("payment_intent_data[transfer_data][destination]", input.DestinationAccountID)
	if input.CustomerEmail != "" {
		form.Set("customer_email", input.CustomerEmail)
	}

	var session CheckoutSession
	if err := c.do(ctx, "POST", "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	if session.PaymentIntentID == "" {
		return nil, fmt.Errorf("checkout session %s has no payment intent", session.ID)
	}
	return &session, nil
}

// GetAccount fetches a connected account, used to check charges_enabled
// before building a checkout for it.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var acct Account
	if err := c.do(ctx, "GET", "/accounts/"+accountID, nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// CreateExpressAccount creates a Connect Express account for a user.
func (c *Client) CreateExpressAccount(ctx context.Context, email string) (*Account, error) {
	form := url.Values{}
	form.Set("type", "express")
	form.Set("email", email)
	form.Set("capabilities[card_payments][requested]", "true")
	form.Set("capabilities[transfers][requested]", "true")

	var acct Account
	if err := c.do(ctx, "POST", "/accounts", form, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// CreateAccountLink produces the hosted onboarding URL for an Express account.
func (c *Client) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("account", accountID)
	form.Set("refresh_url", refreshURL)
	form.Set("return_url", returnURL)
	form.Set("type", "account_onboarding")

	var link accountLinkResponse
	if err := c.do(ctx, "POST", "/account_links", form, &link); err != nil {
		return "", err
	}
	return link.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe error (status %d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse stripe response: %w", err)
		}
	}
	return nil
}
