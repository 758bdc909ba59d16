// Package mercadopago is a minimal REST client for the Mercado Pago checkout
// API: it creates hosted-checkout preferences and fetches payment details for
// webhook notifications. Only the fields this storefront reads are modeled.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.mercadopago.com"

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates a client with the given access token. Sandbox and
// production use the same API host; the token decides the environment.
func NewClient(accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
}

// NewClientFromEnv creates a client from the MP_ACCESS_TOKEN variable.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("MP_ACCESS_TOKEN"))
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// CreatePreference registers a checkout preference and returns the hosted
// payment page URLs.
func (c *Client) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	var pref Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", req, &pref); err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &pref, nil
}

// GetPayment fetches full payment details by id. Webhook payloads only carry
// the id; status and external_reference come from this call.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+id, nil, &payment); err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	return &payment, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
