package stripe

import "encoding/json"

type CheckoutSessionInput struct {
	InvoiceID            string
	AmountCents          int64
	Currency             string
	Description          string
	CustomerEmail        string
	DestinationAccountID string
	SuccessURL           string
	CancelURL            string
}

type CheckoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentIntentID string `json:"payment_intent"`
	PaymentStatus   string `json:"payment_status"`
}

type Account struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

type accountLinkResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Event is the envelope Stripe posts to the webhook endpoint. Data.Object is
// kept raw because its shape depends on Type.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Webhook payload shapes for the event types the reconciler handles.

type SessionObject struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	PaymentIntentID   string `json:"payment_intent"`
	PaymentStatus     string `json:"payment_status"`
}

type PaymentIntentObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AccountObject struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}
