// Package cryptorail implements the Crypto payment rail (spec §4.F): a
// trust-frontend model where the authenticated requester reports a
// transaction id directly, and this narrow client only offers an optional
// best-effort check against the rail's payments-by-metadata endpoint.
package cryptorail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is a minimal HTTP client over the crypto rail's read API. It has
// no "create payment" method: per spec §4.F the frontend creates and
// reports the transaction directly; this client only verifies.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// PaymentRecord is the subset of the rail's payment object this client
// needs to decide whether a claimed transaction id is real.
type PaymentRecord struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Metadata      map[string]string `json:"metadata"`
}

// FindByMetadata queries the rail's payments-by-metadata endpoint for a
// transaction matching contractID. It returns (nil, nil) when nothing
// matches — absence is not treated as an error, since the background
// verifier's job is only to flip payment_status to failed when it is
// confident the claim is false, not to require a successful lookup
// (spec §4.F: "If verification is absent, the trust-frontend posture is
// accepted").
func (c *Client) FindByMetadata(ctx context.Context, contractID string) (*PaymentRecord, error) {
	u, err := url.Parse(c.baseURL + "/payments")
	if err != nil {
		return nil, fmt.Errorf("cryptorail: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("metadata[contract_id]", contractID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cryptorail: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptorail: unexpected status %d", resp.StatusCode)
	}

	var records []PaymentRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("cryptorail: decode response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
