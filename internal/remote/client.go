// Package remote is the single HTTP client every state service talks
// through: base URL handling, bearer-token injection and the global 401
// side effect live here, not in the callers.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/pkg/logger"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// sessionCookieName is the cookie carrying the access token when the
// backend sets one. The cookie copy wins over the local-store copy.
const sessionCookieName = "token"

// APIError carries a non-2xx response. Message is the server-provided
// error text when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// RequestOptions are per-call extras. The 401 side effect is global and
// deliberately not configurable here.
type RequestOptions struct {
	Headers map[string]string
}

// Client is the shared REST client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	store      localstore.Store
	nav        Navigator
	limiter    *rate.Limiter
}

// New creates a client for the given API base URL. The store supplies the
// fallback token copy and absorbs the 401 side effect; nav may be nil when
// no route layer exists (tests, one-shot commands).
func New(baseURL string, store localstore.Store, nav Navigator, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		store: store,
		nav:   nav,
	}, nil
}

// SetRateLimit paces outbound calls. A non-positive rps disables pacing.
func (c *Client) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// SetSessionCookie stores a token cookie on the API origin, mirroring a
// Set-Cookie issued by the backend.
func (c *Client) SetSessionCookie(value string) {
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{
		{Name: sessionCookieName, Value: value, Path: "/"},
	})
}

// token resolves the access token: cookie copy first, stored copy second.
func (c *Client) token() (string, bool) {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == sessionCookieName && ck.Value != "" {
			return ck.Value, true
		}
	}
	if v, ok := c.store.Get(localstore.KeyToken); ok && v != "" {
		return v, true
	}
	return "", false
}

// Do performs one API call. out, when non-nil, receives the decoded 2xx
// body. Failures surface immediately; nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, out interface{}, opts *RequestOptions) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts != nil {
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	logger.APIRequest(method, path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, nil)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out, nil)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, nil)
}

// handleUnauthorized is the global expiry side effect: drop the stored
// credential and bounce protected routes to their login page. Individual
// callers never reimplement this.
func (c *Client) handleUnauthorized() {
	if err := c.store.Delete(localstore.KeyToken); err != nil {
		logger.Error().Err(err).Msg("failed to clear stored token")
	}
	if err := c.store.Delete(localstore.KeyIsAdmin); err != nil {
		logger.Error().Err(err).Msg("failed to clear admin flag")
	}

	if c.nav == nil {
		return
	}
	path := c.nav.CurrentPath()
	switch {
	case strings.HasPrefix(path, "/admin"):
		c.nav.Redirect("/admin/login")
	case strings.HasPrefix(path, "/member"):
		c.nav.Redirect("/login")
	}
}

// errorMessage extracts the server-provided message from an error body.
func errorMessage(raw []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
