package repository

import (
	"context"

	"github.com/nitwit45/todo-demo/internal/tasks/domain"

	"github.com/google/uuid"
)

// Filter narrows a task listing. Nil fields are ignored.
type Filter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
}

//go:generate mockgen -destination=../test/mock_task_repository.go -package=test github.com/nitwit45/todo-demo/internal/tasks/repository TaskRepository
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter Filter) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
