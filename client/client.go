// Package client implements the authentication and session core of the
// learnhub platform: token persistence, claim decoding, session derivation,
// login/registration against the REST API and role-based route guarding.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	loginPath    = "/api/v1/auth/login"
	registerPath = "/api/v1/auth/register"
)

// Notifier surfaces user-visible outcome messages. The default implementation
// logs through zap; UI embedders supply their own.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type zapNotifier struct {
	logger *zap.Logger
}

func (n zapNotifier) Success(message string) { n.logger.Info("notify", zap.String("message", message)) }
func (n zapNotifier) Error(message string)   { n.logger.Warn("notify", zap.String("message", message)) }

// Client performs authentication against the backend and owns the derived
// session state. All methods are safe for concurrent use; the token slot has
// a single writer per user action.
type Client struct {
	baseURL  string
	http     *http.Client
	store    TokenStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu             sync.Mutex
	session        *Session
	ready          bool
	inFlight       bool
	generation     uint64
	listeners      map[int]SessionListener
	nextListenerID int
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithNotifier overrides the user-visible notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// withClock overrides the time source in tests.
func withClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a client for the backend at baseURL, persisting the token
// through store. Call Bootstrap before evaluating guards.
func NewClient(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
		store:     store,
		logger:    zap.NewNop(),
		now:       defaultNow,
		listeners: make(map[int]SessionListener),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = zapNotifier{logger: c.logger}
	}
	return c
}

// RegisterProfile is the payload for account creation.
type RegisterProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	UserType    string `json:"user_type"`
}

// Login authenticates against the backend, persists the returned token and
// re-derives the session. It returns the role for routing. While a login or
// registration is in flight, further calls fail with ErrLoginInFlight so the
// UI cannot double-submit.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", &ValidationError{Message: "username and password are required"}
	}
	if err := c.acquireInFlight(); err != nil {
		return "", err
	}
	defer c.releaseInFlight()

	return c.doLogin(ctx, username, password)
}

// Register creates an account and then performs the login round-trip with the
// same credentials to establish a session; registration itself does not yield
// a usable token. A login failure after a successful registration propagates
// as that login failure, never as a generic success.
func (c *Client) Register(ctx context.Context, profile RegisterProfile) (string, error) {
	if profile.Username == "" || profile.Email == "" || profile.Password == "" {
		return "", &ValidationError{Message: "username, email and password are required"}
	}
	if err := c.acquireInFlight(); err != nil {
		return "", err
	}
	defer c.releaseInFlight()

	if err := c.postJSON(ctx, registerPath, profile, nil); err != nil {
		c.notifier.Error(userMessage(err))
		return "", err
	}
	c.notifier.Success("Account created successfully")

	return c.doLogin(ctx, profile.Username, profile.Password)
}

// Logout clears the token slot and the session. It is a purely local
// operation; any login response still in flight when Logout runs is discarded
// rather than resurrecting the cleared session.
func (c *Client) Logout() {
	c.mu.Lock()
	if err := c.commitTokenLocked(""); err != nil {
		c.logger.Warn("token clear failed", zap.Error(err))
	}
	listeners, session := c.snapshotListenersLocked()
	c.mu.Unlock()

	notify(listeners, session)
	c.notifier.Success("Logged out")
}

// doLogin runs the login round-trip. The generation captured before the
// request detects a logout (or a newer login) committed while this request
// was pending; a stale response must not overwrite the newer state.
func (c *Client) doLogin(ctx context.Context, username, password string) (string, error) {
	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	var resp tokenResponse
	if err := c.postJSON(ctx, loginPath, loginRequest{Username: username, Password: password}, &resp); err != nil {
		c.notifier.Error(userMessage(err))
		return "", err
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		c.logger.Info("discarding stale login response", zap.String("username", username))
		return "", ErrSuperseded
	}
	if err := c.commitTokenLocked(resp.AccessToken); err != nil {
		c.mu.Unlock()
		return "", err
	}
	listeners, session := c.snapshotListenersLocked()
	c.mu.Unlock()

	notify(listeners, session)
	c.notifier.Success("Logged in successfully")
	return resp.UserType, nil
}

func (c *Client) acquireInFlight() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrLoginInFlight
	}
	c.inFlight = true
	return nil
}

func (c *Client) releaseInFlight() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// postJSON sends a JSON POST and decodes a 2xx response into out (when out is
// non-nil). Non-2xx responses become a *BackendError carrying the server's
// detail message when present; transport failures become a *NetworkError.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return backendErrorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func backendErrorFromResponse(resp *http.Response) error {
	backendErr := &BackendError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
			backendErr.Detail = body.Detail
		}
	}
	if backendErr.Detail == "" {
		backendErr.Detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return backendErr
}

func userMessage(err error) string {
	switch e := err.(type) {
	case *BackendError:
		return e.Detail
	case *NetworkError:
		return "Could not reach the server. Please try again."
	default:
		return err.Error()
	}
}
