// Package client implements the HTTP client for the Painel admin API:
// login, token validation, logout, access-profile fetch and a health probe,
// with a single response-to-error translation path shared by every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/painel-dev/painelctl/internal/cli/auth"
)

const defaultHealthTimeout = 5 * time.Second

// Client is an HTTP client for the Painel admin API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         auth.TokenStore
	logger        zerolog.Logger
	onInvalidate  func(status int)
	healthTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTokenStore replaces the session token store.
func WithTokenStore(store auth.TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithInvalidationHook registers a callback invoked after the stored token is
// deleted because a response carried a session-invalidating status (401/403).
// The hook runs before the error is returned to the caller.
func WithInvalidationHook(hook func(status int)) Option {
	return func(c *Client) { c.onInvalidate = hook }
}

// WithHealthTimeout overrides the per-probe timeout used by CheckServerHealth.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) { c.healthTimeout = d }
}

// New creates an API client for the given base URL. The base URL is resolved
// once by the caller (see config.ResolveAPIBaseURL), never per-call.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store:         auth.NewKeyringStore(),
		logger:        zerolog.Nop(),
		healthTimeout: defaultHealthTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Admin represents the authenticated administrator identity returned by the
// login and validate endpoints. The client never caches it.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest represents the login request body. The wire field for the
// password is "senha", matching the Painel backend contract.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Admin Admin  `json:"admin"`
	Token string `json:"token"`
}

// AccessProfile represents a permission profile, fetched by numeric id.
type AccessProfile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// Login authenticates with email and password. The returned token is not
// stored; persisting it is the caller's decision. A transport-level failure
// (no response at all) surfaces the fixed connectivity message instead of the
// raw dial error.
func (c *Client) Login(ctx context.Context, email, senha string) (*LoginResponse, error) {
	jsonData, err := json.Marshal(LoginRequest{Email: email, Senha: senha})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/auth/login", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: connectivityMessage, cause: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.resolveError(resp)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &loginResp, nil
}

// ValidateToken checks the given token against the server and returns the
// admin it belongs to. On any failure, HTTP error and transport error alike,
// the stored token is deleted before the error is returned.
func (c *Client) ValidateToken(ctx context.Context, token string) (*Admin, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/auth/validate", c.baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.deleteStoredToken()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		apiErr := c.resolveError(resp)
		// resolveError only clears the token for 401/403; validation
		// failing for any other reason still ends the session.
		c.deleteStoredToken()
		return nil, apiErr
	}

	var admin Admin
	if err := json.NewDecoder(resp.Body).Decode(&admin); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &admin, nil
}

// Logout ends the session. When a token is stored, the server-side logout is
// attempted best-effort: a failure is logged, never returned. The stored token
// is deleted after the attempt, unconditionally.
func (c *Client) Logout(ctx context.Context) error {
	token, err := c.store.LoadToken()
	if err == nil && token != "" {
		if err := c.postLogout(ctx, token); err != nil {
			c.logger.Warn().Err(err).Msg("Best-effort logout call failed")
		}
	}

	return c.store.DeleteToken()
}

func (c *Client) postLogout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/auth/logout", c.baseURL), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("logout returned status %d", resp.StatusCode)
	}

	return nil
}

// GetProfile fetches an access profile by numeric id, authenticated with the
// stored token.
func (c *Client) GetProfile(ctx context.Context, id int64) (*AccessProfile, error) {
	token, err := c.store.LoadToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/profiles/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.resolveError(resp)
	}

	var profile AccessProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &profile, nil
}

// CheckServerHealth probes /health under the client's health timeout. It
// returns true only for a 2xx response and never returns an error: transport
// failures and timeouts yield false.
func (c *Client) CheckServerHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return isSuccess(resp.StatusCode)
}

// resolveError translates a non-2xx response into an *APIError. The server's
// `{message, status?}` body wins when it parses with a non-empty message;
// otherwise the message is synthesized from the fixed status table. For 401
// and 403 the stored token is deleted and the invalidation hook runs before
// the error is returned.
func (c *Client) resolveError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr = &APIError{Message: messageForStatus(resp.StatusCode)}
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.deleteStoredToken()
		if c.onInvalidate != nil {
			c.onInvalidate(resp.StatusCode)
		}
	}

	return apiErr
}

func (c *Client) deleteStoredToken() {
	if err := c.store.DeleteToken(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to delete stored token")
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
