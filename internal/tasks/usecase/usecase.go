package usecase

import "context"

type TaskUsecase interface {
	ListTasks(ctx context.Context, userID string, input ListTasksInput) ([]TaskResponse, error)
	CreateTask(ctx context.Context, userID string, input CreateTaskInput) (TaskResponse, error)
	UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (TaskResponse, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID string, input UpdateStatusInput) (TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}
