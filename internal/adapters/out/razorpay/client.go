// Package razorpay implements the payment gateway port against the Razorpay
// Orders API. Amounts cross the wire in paise; the callback signature is an
// HMAC-SHA256 over "orderId|paymentId" keyed with the API secret.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/core/ports"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client talks to the Razorpay Orders API over HTTPS with basic auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	enabled    bool
}

// NewClient creates a gateway client. When enabled is false every order
// creation fails with ports.ErrGatewayDisabled, which lets deployments run
// COD-only without gateway credentials.
func NewClient(keyID, keySecret string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		enabled:    enabled,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateRemoteOrder registers a payment intent with Razorpay and returns the
// provider's order id. Transport and provider failures are reported as
// ports.ErrGatewayUnavailable; no payment state has changed when it is
// returned.
func (c *Client) CreateRemoteOrder(
	ctx context.Context,
	amountMinorUnits int64,
	currency string,
	receipt string,
	notes map[string]string,
) (string, error) {
	if !c.enabled {
		return "", ports.ErrGatewayDisabled
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: create order returned status %d",
			ports.ErrGatewayUnavailable, resp.StatusCode)
	}

	var created createOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrGatewayUnavailable, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: create order returned no id", ports.ErrGatewayUnavailable)
	}

	return created.ID, nil
}

// VerifySignature checks the callback signature Razorpay computes over
// "orderId|paymentId". Comparison is constant-time.
func (c *Client) VerifySignature(externalOrderID, externalPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(externalOrderID + "|" + externalPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
