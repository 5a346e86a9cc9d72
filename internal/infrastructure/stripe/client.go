// Package stripe implements the client-side card confirmation flow: the
// backend creates the PaymentIntent and hands back its client secret, and
// this client confirms it against the Stripe API with the publishable key.
package stripe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// Client talks to the Stripe API with a publishable key only. The secret
// key never leaves the backend.
type Client struct {
	publishableKey string
	baseURL        string
	httpClient     *http.Client
}

// NewClient creates a Stripe client. Returns nil when no key is
// configured; a nil client rejects confirmation attempts.
func NewClient(publishableKey string) *Client {
	if publishableKey == "" {
		return nil
	}
	return &Client{
		publishableKey: publishableKey,
		baseURL:        defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SetBaseURL overrides the API host. Test hook.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Card is raw card input collected by the checkout form.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// BillingDetails accompany the payment method.
type BillingDetails struct {
	Name       string
	Email      string
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// PaymentIntent is the subset of the intent object the client reads back.
type PaymentIntent struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	ClientSecret   string `json:"client_secret,omitempty"`
	LastPaymentErr *struct {
		Message string `json:"message"`
	} `json:"last_payment_error,omitempty"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// IntentIDFromSecret extracts the intent id from a client secret of the
// form "pi_XXX_secret_YYY".
func IntentIDFromSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret_")
	if idx <= 0 {
		return "", fmt.Errorf("malformed client secret")
	}
	return clientSecret[:idx], nil
}

// ConfirmCardPayment confirms the intent behind clientSecret with the
// given card, mirroring the browser confirmCardPayment call. A decline
// comes back as an error carrying Stripe's message.
func (c *Client) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*PaymentIntent, error) {
	if c == nil {
		return nil, fmt.Errorf("stripe is not configured")
	}

	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("key", c.publishableKey)
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", card.ExpMonth)
	form.Set("payment_method_data[card][exp_year]", card.ExpYear)
	form.Set("payment_method_data[card][cvc]", card.CVC)
	form.Set("payment_method_data[billing_details][name]", billing.Name)
	form.Set("payment_method_data[billing_details][email]", billing.Email)
	form.Set("payment_method_data[billing_details][address][line1]", billing.Line1)
	form.Set("payment_method_data[billing_details][address][city]", billing.City)
	form.Set("payment_method_data[billing_details][address][state]", billing.State)
	form.Set("payment_method_data[billing_details][address][postal_code]", billing.PostalCode)
	form.Set("payment_method_data[billing_details][address][country]", billing.Country)

	endpoint := fmt.Sprintf("%s/payment_intents/%s/confirm", c.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stripe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe error (status %d)", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	return &intent, nil
}
