package handler

import (
	"errors"
	"net/http"

	"github.com/nitwit45/todo-demo/internal/users/domain"
	"github.com/nitwit45/todo-demo/internal/users/usecase"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	usecase usecase.UserUsecase
}

func NewUserHandler(u usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		usecase: u,
	}
}

func (h *UserHandler) Bind(e *echo.Group) {
	e.GET("/profile", h.GetProfileHandler)
	e.PUT("/profile", h.UpdateProfileHandler)
	e.POST("/avatar", h.UploadAvatarHandler)
}

func (h *UserHandler) GetProfileHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.usecase.GetUserProfile(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfileHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid profile fields")
	}

	profile, err := h.usecase.UpdateUserProfile(c.Request().Context(), userID, req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

func (h *UserHandler) UploadAvatarHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		return response.Error(c, http.StatusBadRequest, domain.ErrAvatarFileRequired.Error())
	}

	file, err := header.Open()
	if err != nil {
		logger.Error("Failed to open uploaded avatar", err)
		return response.Error(c, http.StatusBadRequest, "Could not read uploaded file")
	}
	defer file.Close()

	result, err := h.usecase.UploadAvatar(c.Request().Context(), userID, file, header)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *UserHandler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidUserEmail),
		errors.Is(err, domain.ErrInvalidUserName),
		errors.Is(err, domain.ErrAvatarFileRequired):
		return response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAvatarUploadFailed):
		return response.Error(c, http.StatusBadGateway, err.Error())
	default:
		logger.Error("Unexpected error in user handler", err)
		return response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
