package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// recentLoginWindow is how long a just-issued login keeps serving the cached
// user from CurrentUser, so a slow in-flight profile fetch started before the
// login cannot overwrite the fresh session's view.
const recentLoginWindow = 5 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success           bool            `json:"success"`
	RequiresTwoFactor bool            `json:"requiresTwoFactor"`
	Message           string          `json:"message"`
	Data              json.RawMessage `json:"data"`
}

// Client talks to the API server and transparently refreshes an expired
// access token: on a 401 it performs at most one refresh call and one retry
// of the original request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu                    sync.Mutex
	cachedUser            *User
	recentlyLoggedInUntil time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs an authenticated request. On 401 with a refresh token on hand it
// refreshes once and retries once; if the refresh itself fails, the original
// 401 is returned unchanged.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	access, _ := c.store.Tokens()
	err := c.send(ctx, method, path, body, out, access)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return err
	}

	_, refresh := c.store.Tokens()
	if refresh == "" {
		return err
	}

	newAccess, refreshErr := c.refreshAccess(ctx, refresh)
	if refreshErr != nil {
		return err
	}
	_ = c.store.SetAccess(newAccess)

	return c.send(ctx, method, path, body, out, newAccess)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, access string) error {
	env, err := c.sendEnvelope(ctx, method, path, body, access)
	if err != nil {
		return err
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) sendEnvelope(ctx context.Context, method, path string, body any, access string) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 400 {
			return nil, decodeErr
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// refreshAccess calls the refresh endpoint directly, outside do, so a failed
// refresh can never trigger another refresh.
func (c *Client) refreshAccess(ctx context.Context, refresh string) (string, error) {
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.send(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refresh}, &out, "")
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("refresh response missing access token")
	}
	return out.AccessToken, nil
}

func (c *Client) rememberLogin(user User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := user
	c.cachedUser = &u
	c.recentlyLoggedInUntil = time.Now().Add(recentLoginWindow)
}

func (c *Client) recentUser() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedUser != nil && time.Now().Before(c.recentlyLoggedInUntil) {
		u := *c.cachedUser
		return &u
	}
	return nil
}

func (c *Client) forgetLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cachedUser = nil
	c.recentlyLoggedInUntil = time.Time{}
}
