// Package stripe implements the Card payment rail (spec §4.F): a
// pre-authorization model where the backend creates a PaymentIntent and
// the client confirms the charge off-band, with convergence delivered by
// a signed webhook.
package stripe

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Client is a thin wrapper over stripe-go, one per process (spec §5: "one
// reusable HTTP client per external collaborator").
type Client struct {
	webhookSecret string
}

func NewClient(secretKey, webhookSecret string) *Client {
	stripe.Key = secretKey
	return &Client{webhookSecret: webhookSecret}
}

// Intent is the (intent_id, client_secret) pair handed back to the client
// to confirm the charge (spec §4.F).
type Intent struct {
	ID           string
	ClientSecret string
}

// CreateIntent creates a PaymentIntent for the given amount (in the
// quoted currency's smallest cent-equivalent unit) and metadata.
func (c *Client) CreateIntent(amountCents int64, currency string, metadata map[string]string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe: create intent: %w", err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// Refund issues a partial or full refund against a succeeded PaymentIntent
// (spec §4.E cancel transition, card branch).
func (c *Client) Refund(intentID string, amountCents int64) (externalRefundID string, err error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amountCents),
	}
	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: refund: %w", err)
	}
	return r.ID, nil
}

// WebhookEventType is the subset of Stripe event types the coordinator
// reacts to (spec §4.F).
type WebhookEventType string

const (
	EventIntentSucceeded     WebhookEventType = "payment_intent.succeeded"
	EventIntentPaymentFailed WebhookEventType = "payment_intent.payment_failed"
)

// WebhookEvent is the canonical shape handed to the payment coordinator
// after signature verification.
type WebhookEvent struct {
	ID        string
	Type      WebhookEventType
	IntentID  string
}

// ParseWebhook verifies the HMAC-SHA256 signature and extracts the
// PaymentIntent id the coordinator needs to resolve the contract (spec
// §4.F, §6 webhook signature envelope).
func (c *Client) ParseWebhook(body []byte, signatureHeader string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(body, signatureHeader, c.webhookSecret)
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("stripe: signature verification failed: %w", err)
	}

	out := WebhookEvent{ID: event.ID, Type: WebhookEventType(event.Type)}
	if out.Type != EventIntentSucceeded && out.Type != EventIntentPaymentFailed {
		return out, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return WebhookEvent{}, fmt.Errorf("stripe: decode payment_intent: %w", err)
	}
	out.IntentID = pi.ID
	return out, nil
}
