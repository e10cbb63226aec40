// Package payment talks to the card payment gateway. Only session
// creation is implemented; confirmation happens on the gateway's hosted
// page and the admin marks orders paid by hand.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
)

var (
	// ErrNotConfigured is returned when no gateway key is set. Card
	// checkout is optional; the WhatsApp flow works without it.
	ErrNotConfigured = errors.New("payment gateway not configured")
)

// Session is a created checkout session. The customer is redirected to
// URL to complete payment.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutClient creates hosted checkout sessions.
type CheckoutClient interface {
	CreateSession(ctx context.Context, items []models.OrderItem, customer models.Customer) (*Session, error)
}

// HTTPCheckoutClient implements CheckoutClient against the gateway's
// form-encoded HTTP API.
type HTTPCheckoutClient struct {
	baseURL    string
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

// NewHTTPCheckoutClient creates a gateway client. successURL and cancelURL
// are where the hosted page sends the customer afterwards.
func NewHTTPCheckoutClient(baseURL, secretKey, successURL, cancelURL string, timeout time.Duration) *HTTPCheckoutClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCheckoutClient{
		baseURL:    baseURL,
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateSession registers a card checkout session for the given cart.
// Unit prices are reference-unit amounts and are sent in cents.
func (c *HTTPCheckoutClient) CreateSession(ctx context.Context, items []models.OrderItem, customer models.Customer) (*Session, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("metadata[customerName]", customer.Name)
	form.Set("metadata[customerPhone]", customer.Phone)
	form.Set("metadata[customerCity]", customer.City)

	for i, it := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "eur")
		form.Set(prefix+"[price_data][product_data][name]", it.Name)
		if it.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", it.Description)
		}
		cents := it.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(cents, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(it.Quantity))
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &session, nil
}
