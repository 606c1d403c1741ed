package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/internal/auth/usecase"
	appvalidator "github.com/nitwit45/todo-demo/pkg/validator"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	usecase.AuthUsecase

	loginFn   func(ctx context.Context, input usecase.LoginInput) (usecase.LoginOutput, error)
	signupFn  func(ctx context.Context, input usecase.SignupInput) (usecase.Session, error)
	disableFn func(ctx context.Context, userID string) error
}

func (s *stubUsecase) DisableTwoFactor(ctx context.Context, userID string) error {
	return s.disableFn(ctx, userID)
}

func (s *stubUsecase) Login(ctx context.Context, input usecase.LoginInput) (usecase.LoginOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubUsecase) Signup(ctx context.Context, input usecase.SignupInput) (usecase.Session, error) {
	return s.signupFn(ctx, input)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	v := validator.New()
	appvalidator.RegisterValidations(v)
	e.Validator = &testValidator{validator: v}
	return e
}

func postJSON(e *echo.Echo, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginHandler_SessionEnvelope(t *testing.T) {
	e := newEcho()
	stub := &stubUsecase{
		loginFn: func(_ context.Context, input usecase.LoginInput) (usecase.LoginOutput, error) {
			return usecase.LoginOutput{Session: &usecase.Session{
				User:         usecase.UserInfo{ID: "u1", Email: input.Email},
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
			}}, nil
		},
	}
	h := NewAuthHandler(stub)

	rec := postJSON(e, h.LoginHandler, `{"email":"ada@example.com","password":"pw12345678"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "requiresTwoFactor")

	data := body["data"].(map[string]any)
	assert.Equal(t, "access-1", data["accessToken"])
	assert.Equal(t, "refresh-1", data["refreshToken"])
}

func TestLoginHandler_TwoFactorEnvelope(t *testing.T) {
	e := newEcho()
	stub := &stubUsecase{
		loginFn: func(context.Context, usecase.LoginInput) (usecase.LoginOutput, error) {
			return usecase.LoginOutput{Challenge: &usecase.TwoFactorChallenge{UserID: "u1"}}, nil
		},
	}
	h := NewAuthHandler(stub)

	rec := postJSON(e, h.LoginHandler, `{"email":"ada@example.com","password":"pw12345678"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["requiresTwoFactor"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "u1", data["userId"])
	assert.NotContains(t, data, "accessToken")
}

func TestLoginHandler_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"too many attempts", domain.ErrTooManyLoginAttempts, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubUsecase{
				loginFn: func(context.Context, usecase.LoginInput) (usecase.LoginOutput, error) {
					return usecase.LoginOutput{}, tc.err
				},
			}
			h := NewAuthHandler(stub)

			rec := postJSON(e, h.LoginHandler, `{"email":"ada@example.com","password":"pw12345678"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.err.Error(), body["message"])
		})
	}
}

func TestSignupHandler_Conflict(t *testing.T) {
	e := newEcho()
	stub := &stubUsecase{
		signupFn: func(context.Context, usecase.SignupInput) (usecase.Session, error) {
			return usecase.Session{}, domain.ErrUserAlreadyExists
		},
	}
	h := NewAuthHandler(stub)

	rec := postJSON(e, h.SignupHandler, `{"email":"ada@example.com","password":"pw12345678","name":"Ada"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestDisableTwoFactorHandler_MessageEnvelope(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubUsecase{
		disableFn: func(_ context.Context, userID string) error {
			assert.Equal(t, "u1", userID)
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	require.NoError(t, h.DisableTwoFactorHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "2FA disabled successfully", body["message"])
	assert.NotContains(t, body, "data")
}

func TestSignupHandler_RejectsShortPassword(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubUsecase{
		signupFn: func(context.Context, usecase.SignupInput) (usecase.Session, error) {
			t.Fatal("usecase must not be reached on validation failure")
			return usecase.Session{}, nil
		},
	})

	rec := postJSON(e, h.SignupHandler, `{"email":"ada@example.com","password":"short","name":"Ada"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}
