// Package yoco is a thin client for the Yoco hosted-checkout API. The
// service only initiates checkout sessions; payment processing itself is
// the gateway's business.
package yoco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckoutRequest creates one payment attempt. Amount is in integer cents.
type CheckoutRequest struct {
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"successUrl,omitempty"`
	CancelURL  string            `json:"cancelUrl,omitempty"`
	FailureURL string            `json:"failureUrl,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Checkout is the gateway's handle for one payment attempt.
type Checkout struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
	Status      string `json:"status"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"errorCode"`
}

type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckout posts a new checkout session to the gateway.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	if req.Amount <= 0 {
		return Checkout{}, fmt.Errorf("checkout amount must be positive")
	}
	if req.Currency == "" {
		req.Currency = "ZAR"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Checkout{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return Checkout{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return Checkout{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Checkout{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return Checkout{}, fmt.Errorf("yoco checkout failed (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return Checkout{}, fmt.Errorf("yoco checkout failed with status %d", resp.StatusCode)
	}

	var out Checkout
	if err := json.Unmarshal(raw, &out); err != nil {
		return Checkout{}, err
	}
	if out.ID == "" {
		return Checkout{}, fmt.Errorf("yoco response missing checkout id")
	}
	return out, nil
}
