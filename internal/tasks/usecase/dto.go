package usecase

import (
	"time"

	"github.com/nitwit45/todo-demo/internal/tasks/domain"
)

type CreateTaskInput struct {
	Title       string     `json:"title" form:"title" validate:"required,max=200"`
	Description string     `json:"description" form:"description" validate:"max=2000"`
	Status      string     `json:"status,omitempty" form:"status"`
	Priority    string     `json:"priority,omitempty" form:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty" form:"dueDate"`
	Tags        []string   `json:"tags,omitempty" form:"tags"`
}

type UpdateTaskInput struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

type UpdateStatusInput struct {
	Status string `json:"status" form:"status" validate:"required"`
}

type ListTasksInput struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	UserID      string     `json:"user"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToTaskResponse(task *domain.Task) TaskResponse {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		UserID:      task.UserID.String(),
		DueDate:     task.DueDate,
		Tags:        tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskResponse(task))
	}
	return out
}
