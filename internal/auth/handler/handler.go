package handler

import (
	"errors"
	"net/http"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/internal/auth/usecase"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/response"
	"github.com/nitwit45/todo-demo/pkg/token"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	usecase usecase.AuthUsecase
}

func NewAuthHandler(u usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		usecase: u,
	}
}

func (h *AuthHandler) Bind(e *echo.Group, requireAuth echo.MiddlewareFunc) {
	e.POST("/signup", h.SignupHandler)
	e.POST("/login", h.LoginHandler)
	e.POST("/login/2fa", h.TwoFactorLoginHandler)
	e.POST("/refresh", h.RefreshHandler)
	e.GET("/me", h.CurrentUserHandler, requireAuth)
	e.POST("/2fa/setup", h.SetupTwoFactorHandler, requireAuth)
	e.POST("/2fa/verify", h.VerifyTwoFactorHandler, requireAuth)
	e.POST("/2fa/disable", h.DisableTwoFactorHandler, requireAuth)
}

func (h *AuthHandler) SignupHandler(c echo.Context) error {
	var req usecase.SignupInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Email, password, and name are required")
	}

	session, err := h.usecase.Signup(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusCreated, session)
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	output, err := h.usecase.Login(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	if output.Challenge != nil {
		return response.TwoFactorChallenge(c, http.StatusOK, output.Challenge)
	}

	return response.Success(c, http.StatusOK, output.Session)
}

func (h *AuthHandler) TwoFactorLoginHandler(c echo.Context) error {
	var req usecase.TwoFactorLoginInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "User ID and token are required")
	}

	session, err := h.usecase.LoginTwoFactor(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

func (h *AuthHandler) RefreshHandler(c echo.Context) error {
	var req usecase.RefreshInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Refresh token is required")
	}

	output, err := h.usecase.Refresh(c.Request().Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

func (h *AuthHandler) CurrentUserHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.usecase.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) SetupTwoFactorHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	output, err := h.usecase.SetupTwoFactor(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

func (h *AuthHandler) VerifyTwoFactorHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req usecase.VerifyTwoFactorInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Token is required")
	}

	output, err := h.usecase.VerifyTwoFactor(c.Request().Context(), userID, req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

func (h *AuthHandler) DisableTwoFactorHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.usecase.DisableTwoFactor(c.Request().Context(), userID); err != nil {
		return h.respondError(c, err)
	}

	return response.SuccessMessage(c, http.StatusOK, "2FA disabled successfully", nil)
}

func (h *AuthHandler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidTwoFactorCode),
		errors.Is(err, token.ErrInvalidToken):
		return response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTooManyLoginAttempts):
		return response.Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrInvalidUserEmail),
		errors.Is(err, domain.ErrInvalidUserEmailFormat),
		errors.Is(err, domain.ErrInvalidUserName),
		errors.Is(err, domain.ErrInvalidUserNameLength),
		errors.Is(err, domain.ErrInvalidUserPassword),
		errors.Is(err, domain.ErrInvalidUserPasswordFormat),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrTwoFactorNotPending),
		errors.Is(err, domain.ErrTwoFactorNotEnabled):
		return response.Error(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Unexpected error in auth handler", err)
		return response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
