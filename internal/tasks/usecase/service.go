package usecase

import (
	"context"
	"errors"

	"github.com/nitwit45/todo-demo/internal/tasks/domain"
	"github.com/nitwit45/todo-demo/internal/tasks/repository"
	"github.com/nitwit45/todo-demo/pkg/logger"

	"github.com/google/uuid"
)

type taskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) TaskUsecase {
	return &taskService{repo: repo}
}

func (s *taskService) ListTasks(ctx context.Context, userID string, input ListTasksInput) ([]TaskResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	filter := repository.Filter{}
	if input.Status != "" {
		status := domain.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidTaskStatus
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := domain.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidTaskPriority
		}
		filter.Priority = &priority
	}

	tasks, err := s.repo.ListTasks(ctx, userUUID, filter)
	if err != nil {
		logger.Error("Failed to list tasks", err)
		return nil, err
	}

	return ToTaskResponses(tasks), nil
}

func (s *taskService) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (TaskResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return TaskResponse{}, domain.ErrInvalidTaskID
	}

	task := &domain.Task{
		UserID:      userUUID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityMedium,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
	}
	if input.Status != "" {
		task.Status = domain.TaskStatus(input.Status)
	}
	if input.Priority != "" {
		task.Priority = domain.TaskPriority(input.Priority)
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := task.Validate(); err != nil {
		return TaskResponse{}, err
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		logger.Error("Failed to create task", err)
		return TaskResponse{}, err
	}

	return ToTaskResponse(created), nil
}

func (s *taskService) UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (TaskResponse, error) {
	task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = domain.TaskStatus(*input.Status)
	}
	if input.Priority != nil {
		task.Priority = domain.TaskPriority(*input.Priority)
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}

	if err := task.Validate(); err != nil {
		return TaskResponse{}, err
	}

	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			logger.Error("Failed to update task", err)
		}
		return TaskResponse{}, err
	}

	return ToTaskResponse(updated), nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, userID, taskID string, input UpdateStatusInput) (TaskResponse, error) {
	status := domain.TaskStatus(input.Status)
	if !status.Valid() {
		return TaskResponse{}, domain.ErrInvalidTaskStatus
	}

	task, err := s.loadTask(ctx, userID, taskID)
	if err != nil {
		return TaskResponse{}, err
	}

	task.Status = status

	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			logger.Error("Failed to update task status", err)
		}
		return TaskResponse{}, err
	}

	return ToTaskResponse(updated), nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrInvalidTaskID
	}

	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return domain.ErrInvalidTaskID
	}

	if err := s.repo.DeleteTask(ctx, userUUID, taskUUID); err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			logger.Error("Failed to delete task", err)
		}
		return err
	}

	return nil
}

func (s *taskService) loadTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return nil, domain.ErrInvalidTaskID
	}

	return s.repo.GetTask(ctx, userUUID, taskUUID)
}
