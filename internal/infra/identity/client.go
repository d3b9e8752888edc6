// Package identity is a client for a GoTrue-compatible identity provider.
// It signs users up, exchanges passwords for sessions and resolves access tokens to users.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/resilience/circuitbreaker"
	"notes-backend/internal/resilience/retry"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 1 << 20

// Config contains connection settings for the identity provider.
type Config struct {
	// BaseURL is the project URL; requests go to {BaseURL}/auth/v1/...
	BaseURL string

	// APIKey is sent as the apikey header on every request
	APIKey string

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration

	// RateLimit is the sustained outbound request rate (requests per second)
	RateLimit float64

	// Burst is the number of requests allowed above RateLimit
	Burst int
}

// Client talks to the identity provider's REST API.
// Calls go through a token-bucket limiter, a circuit breaker and retry with backoff.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.Breaker
	retryCfg   retry.Config
}

// NewClient creates a client with the default resilience settings.
func NewClient(cfg Config) *Client {
	return NewClientWithResilience(cfg, circuitbreaker.IdentityAPIConfig(), retry.IdentityAPIConfig())
}

// NewClientWithResilience creates a client with explicit breaker and retry settings.
// Provider 4xx responses count as successes for the breaker and are never retried.
func NewClientWithResilience(cfg Config, cbCfg circuitbreaker.Config, retryCfg retry.Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	cbCfg.IsSuccessful = func(err error) bool {
		return err == nil || IsClientError(err) || errors.Is(err, context.Canceled)
	}
	retryCfg.Retryable = isRetryable

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    circuitbreaker.New(cbCfg),
		retryCfg:   retryCfg,
	}
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpResponse covers both shapes GoTrue returns: a session when the
// account is confirmed immediately, or the bare user when confirmation is pending.
type signUpResponse struct {
	entity.Session
	entity.IdentityUser
}

// SignUp registers a new account. The session is nil when the provider
// requires email confirmation before issuing tokens.
func (c *Client) SignUp(ctx context.Context, email, password string, fullName *string) (*entity.IdentityUser, *entity.Session, error) {
	req := signUpRequest{Email: email, Password: password}
	if fullName != nil {
		req.Data = map[string]any{"full_name": *fullName}
	}

	var resp signUpResponse
	if err := c.do(ctx, "signup", http.MethodPost, "/auth/v1/signup", nil, "", req, &resp); err != nil {
		return nil, nil, fmt.Errorf("SignUp: %w", err)
	}

	if resp.AccessToken != "" {
		session := resp.Session
		user := session.User
		if user == nil {
			user = &resp.IdentityUser
		}
		return user, &session, nil
	}
	if resp.User != nil {
		return resp.User, nil, nil
	}
	if resp.ID == "" {
		return nil, nil, fmt.Errorf("SignUp: provider response has no user")
	}
	user := resp.IdentityUser
	return &user, nil, nil
}

// SignIn exchanges an email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	query := url.Values{"grant_type": {"password"}}
	var session entity.Session
	err := c.do(ctx, "token", http.MethodPost, "/auth/v1/token", query, "",
		passwordGrantRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, fmt.Errorf("SignIn: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("SignIn: provider response has no access token")
	}
	return &session, nil
}

// GetUser returns the user the access token was issued to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error) {
	var user entity.IdentityUser
	if err := c.do(ctx, "user", http.MethodGet, "/auth/v1/user", nil, accessToken, nil, &user); err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return &user, nil
}

// BreakerOpen reports whether the circuit breaker is rejecting calls.
func (c *Client) BreakerOpen() bool {
	return c.breaker.IsOpen()
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, in, out any) error {
	if c.cfg.BaseURL == "" {
		return ErrNotConfigured
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		return c.breaker.Do(func() error {
			return c.send(ctx, method, endpoint, token, payload, out)
		})
	})
	recordRequest(op, err, time.Since(start))

	if err != nil && !IsClientError(err) {
		slog.Warn("identity provider request failed",
			slog.String("operation", op),
			slog.String("breaker_state", c.breaker.State().String()),
			slog.Any("error", err))
	}
	return err
}

func (c *Client) send(ctx context.Context, method, endpoint, token string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newProviderError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
