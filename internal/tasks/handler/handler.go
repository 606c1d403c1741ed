package handler

import (
	"errors"
	"net/http"

	"github.com/nitwit45/todo-demo/internal/tasks/domain"
	"github.com/nitwit45/todo-demo/internal/tasks/usecase"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/response"

	"github.com/labstack/echo/v4"
)

type TaskHandler struct {
	usecase usecase.TaskUsecase
}

func NewTaskHandler(u usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		usecase: u,
	}
}

func (h *TaskHandler) Bind(e *echo.Group) {
	e.GET("", h.ListTasksHandler)
	e.POST("", h.CreateTaskHandler)
	e.PUT("/:id", h.UpdateTaskHandler)
	e.PATCH("/:id/status", h.UpdateTaskStatusHandler)
	e.DELETE("/:id", h.DeleteTaskHandler)
}

func (h *TaskHandler) ListTasksHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	input := usecase.ListTasksInput{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	}

	tasks, err := h.usecase.ListTasks(c.Request().Context(), userID, input)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTaskHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req usecase.CreateTaskInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Title is required")
	}

	task, err := h.usecase.CreateTask(c.Request().Context(), userID, req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTaskHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req usecase.UpdateTaskInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid task fields")
	}

	task, err := h.usecase.UpdateTask(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTaskStatusHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req usecase.UpdateStatusInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Status is required")
	}

	task, err := h.usecase.UpdateTaskStatus(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return response.Success(c, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTaskHandler(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return response.Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.usecase.DeleteTask(c.Request().Context(), userID, c.Param("id")); err != nil {
		return h.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTaskID),
		errors.Is(err, domain.ErrInvalidTaskTitle),
		errors.Is(err, domain.ErrInvalidTaskTitleLength),
		errors.Is(err, domain.ErrInvalidTaskDescriptionLength),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidTaskPriority):
		return response.Error(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Unexpected error in task handler", err)
		return response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
