// Package web3forms submits contact-form messages straight to the
// Web3Forms service, bypassing the backend entirely.
package web3forms

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nothingelse-storefront/internal/domain"

	"github.com/goccy/go-json"
)

const defaultEndpoint = "https://api.web3forms.com/submit"

// Client posts contact submissions to Web3Forms.
type Client struct {
	accessKey  string
	toEmail    string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Web3Forms client. Returns nil when no access key is
// configured; a nil client rejects submissions with a clear error.
func NewClient(accessKey, toEmail, endpoint string) *Client {
	if accessKey == "" {
		return nil
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		accessKey: accessKey,
		toEmail:   toEmail,
		endpoint:  strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type submitPayload struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email,omitempty"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit delivers one contact message. Non-2xx responses and explicit
// success=false payloads both surface as errors with the service message.
func (c *Client) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if c == nil {
		return fmt.Errorf("contact form service is not configured")
	}

	raw, err := json.Marshal(submitPayload{
		AccessKey: c.accessKey,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		ToEmail:   c.toEmail,
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("web3forms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read web3forms response: %w", err)
	}

	var result submitResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("invalid JSON response from web3forms")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.Success {
		errMsg := result.Error
		if errMsg == "" {
			errMsg = result.Message
		}
		if errMsg == "" {
			errMsg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("web3forms error: %s", errMsg)
	}
	return nil
}
