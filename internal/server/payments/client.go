// Package payments talks to the hosted payment gateway: order creation over
// its REST API plus signature checks for checkout callbacks and webhooks.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 1 << 20
)

// Config configures the gateway client.
type Config struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

// Client creates orders on the gateway with HTTP basic auth.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// Order is the subset of the gateway order we keep.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("payments: BaseURL must be a valid URL")
	}
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("payments: key id and secret are required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: client,
	}, nil
}

// KeyID is the public key the browser checkout needs.
func (c *Client) KeyID() string { return c.keyID }

// CreateOrder registers an order for amountMinor (paise for INR).
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*Order, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("payments: amount must be positive")
	}

	body, err := json.Marshal(map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("payments: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payments: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("payments: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if msg := gjson.GetBytes(raw, "error.description").String(); msg != "" {
			return nil, fmt.Errorf("payments: %s: %s", resp.Status, msg)
		}
		return nil, fmt.Errorf("payments: %s", resp.Status)
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("payments: decode response: invalid json")
	}
	res := gjson.ParseBytes(raw)
	order := &Order{
		ID:       res.Get("id").String(),
		Amount:   res.Get("amount").Int(),
		Currency: res.Get("currency").String(),
		Receipt:  res.Get("receipt").String(),
		Status:   res.Get("status").String(),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("payments: response without order id")
	}
	return order, nil
}
