package test

import (
	"context"
	"testing"

	"github.com/nitwit45/todo-demo/internal/tasks/domain"
	"github.com/nitwit45/todo-demo/internal/tasks/repository"
	"github.com/nitwit45/todo-demo/internal/tasks/usecase"
	"github.com/nitwit45/todo-demo/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

func setupService(t *testing.T) (*MockTaskRepository, usecase.TaskUsecase) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockTaskRepository(ctrl)
	service := usecase.NewTaskService(mockRepo)
	return mockRepo, service
}

func sampleTask(userID uuid.UUID) *domain.Task {
	return &domain.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Write release notes",
		Status:   domain.StatusTodo,
		Priority: domain.PriorityMedium,
		Tags:     []string{"docs"},
	}
}

func TestCreateTask_AppliesDefaults(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.EXPECT().
		CreateTask(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			assert.Equal(t, domain.StatusTodo, task.Status)
			assert.Equal(t, domain.PriorityMedium, task.Priority)
			assert.Equal(t, userID, task.UserID)
			assert.NotNil(t, task.Tags)

			task.ID = uuid.New()
			return task, nil
		})

	result, err := service.CreateTask(ctx, userID.String(), usecase.CreateTaskInput{
		Title: "Write release notes",
	})

	require.NoError(t, err)
	assert.Equal(t, "Write release notes", result.Title)
	assert.Equal(t, string(domain.StatusTodo), result.Status)
	assert.Equal(t, string(domain.PriorityMedium), result.Priority)
}

func TestCreateTask_RejectsMissingTitle(t *testing.T) {
	_, service := setupService(t)

	_, err := service.CreateTask(context.Background(), uuid.New().String(), usecase.CreateTaskInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskTitle)
}

func TestListTasks_FiltersByStatus(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()
	done := domain.StatusDone

	mockRepo.EXPECT().
		ListTasks(ctx, userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter repository.Filter) ([]*domain.Task, error) {
			require.NotNil(t, filter.Status)
			assert.Equal(t, done, *filter.Status)
			assert.Nil(t, filter.Priority)

			task := sampleTask(userID)
			task.Status = done
			return []*domain.Task{task}, nil
		})

	tasks, err := service.ListTasks(ctx, userID.String(), usecase.ListTasksInput{Status: "DONE"})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "DONE", tasks[0].Status)
}

func TestListTasks_RejectsUnknownStatus(t *testing.T) {
	_, service := setupService(t)

	_, err := service.ListTasks(context.Background(), uuid.New().String(), usecase.ListTasksInput{Status: "SHIPPED"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()
	task := sampleTask(userID)
	newTitle := "Write better release notes"

	mockRepo.EXPECT().
		GetTask(ctx, userID, task.ID).
		Return(task, nil)

	mockRepo.EXPECT().
		UpdateTask(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.Task) (*domain.Task, error) {
			assert.Equal(t, newTitle, updated.Title)
			assert.Equal(t, domain.StatusTodo, updated.Status, "untouched fields keep their values")
			return updated, nil
		})

	result, err := service.UpdateTask(ctx, userID.String(), task.ID.String(), usecase.UpdateTaskInput{
		Title: &newTitle,
	})

	require.NoError(t, err)
	assert.Equal(t, newTitle, result.Title)
}

func TestUpdateTaskStatus_Success(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()
	task := sampleTask(userID)

	mockRepo.EXPECT().
		GetTask(ctx, userID, task.ID).
		Return(task, nil)

	mockRepo.EXPECT().
		UpdateTask(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.Task) (*domain.Task, error) {
			assert.Equal(t, domain.StatusInProgress, updated.Status)
			return updated, nil
		})

	result, err := service.UpdateTaskStatus(ctx, userID.String(), task.ID.String(), usecase.UpdateStatusInput{
		Status: "IN_PROGRESS",
	})

	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", result.Status)
}

func TestUpdateTaskStatus_RejectsUnknownStatus(t *testing.T) {
	_, service := setupService(t)

	_, err := service.UpdateTaskStatus(context.Background(), uuid.New().String(), uuid.New().String(), usecase.UpdateStatusInput{
		Status: "ARCHIVED",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestUpdateTask_CrossUserLooksLikeMissing(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	intruderID := uuid.New()
	task := sampleTask(ownerID)
	newTitle := "Hijacked"

	mockRepo.EXPECT().
		GetTask(ctx, intruderID, task.ID).
		Return(nil, domain.ErrTaskNotFound)

	_, err := service.UpdateTask(ctx, intruderID.String(), task.ID.String(), usecase.UpdateTaskInput{
		Title: &newTitle,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask_Success(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockRepo.EXPECT().
		DeleteTask(ctx, userID, taskID).
		Return(nil)

	require.NoError(t, service.DeleteTask(ctx, userID.String(), taskID.String()))
}

func TestDeleteTask_NotFound(t *testing.T) {
	mockRepo, service := setupService(t)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockRepo.EXPECT().
		DeleteTask(ctx, userID, taskID).
		Return(domain.ErrTaskNotFound)

	err := service.DeleteTask(ctx, userID.String(), taskID.String())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
