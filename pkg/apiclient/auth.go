package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is either a full session or a two-factor challenge, never both.
type LoginResult struct {
	RequiresTwoFactor bool
	UserID            string
	Session           *Session
}

type TwoFactorSetup struct {
	QRCode string `json:"qrCode"`
	Secret string `json:"secret"`
}

func (c *Client) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	body := map[string]string{"email": email, "password": password, "name": name}

	var session Session
	if err := c.send(ctx, http.MethodPost, "/api/auth/signup", body, &session, ""); err != nil {
		return nil, err
	}

	if err := c.store.SetTokens(session.AccessToken, session.RefreshToken); err != nil {
		return nil, err
	}
	c.rememberLogin(session.User)

	return &session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	env, err := c.sendEnvelope(ctx, http.MethodPost, "/api/auth/login", body, "")
	if err != nil {
		return nil, err
	}

	if env.RequiresTwoFactor {
		var challenge struct {
			UserID string `json:"userId"`
		}
		if err := unmarshalData(env, &challenge); err != nil {
			return nil, err
		}
		return &LoginResult{RequiresTwoFactor: true, UserID: challenge.UserID}, nil
	}

	var session Session
	if err := unmarshalData(env, &session); err != nil {
		return nil, err
	}

	if err := c.store.SetTokens(session.AccessToken, session.RefreshToken); err != nil {
		return nil, err
	}
	c.rememberLogin(session.User)

	return &LoginResult{Session: &session}, nil
}

func (c *Client) LoginTwoFactor(ctx context.Context, userID, code string) (*Session, error) {
	body := map[string]string{"userId": userID, "token": code}

	var session Session
	if err := c.send(ctx, http.MethodPost, "/api/auth/login/2fa", body, &session, ""); err != nil {
		return nil, err
	}

	if err := c.store.SetTokens(session.AccessToken, session.RefreshToken); err != nil {
		return nil, err
	}
	c.rememberLogin(session.User)

	return &session, nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	_, refresh := c.store.Tokens()
	access, err := c.refreshAccess(ctx, refresh)
	if err != nil {
		return "", err
	}
	if err := c.store.SetAccess(access); err != nil {
		return "", err
	}
	return access, nil
}

// CurrentUser returns the authenticated user. Right after a login or signup
// it answers from the session cache without a network round trip.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if user := c.recentUser(); user != nil {
		return user, nil
	}

	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) SetupTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	var setup TwoFactorSetup
	if err := c.do(ctx, http.MethodPost, "/api/auth/2fa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

func (c *Client) VerifyTwoFactor(ctx context.Context, code string) error {
	body := map[string]string{"token": code}
	return c.do(ctx, http.MethodPost, "/api/auth/2fa/verify", body, nil)
}

func (c *Client) DisableTwoFactor(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/2fa/disable", nil, nil)
}

// Logout drops both tokens and the cached user.
func (c *Client) Logout() error {
	c.forgetLogin()
	return c.store.Clear()
}

func unmarshalData(env *envelope, out any) error {
	if env.Data == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
