package repository

import (
	"context"
	"errors"

	"github.com/nitwit45/todo-demo/internal/database"
	"github.com/nitwit45/todo-demo/internal/tasks/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var taskColumns = []string{
	"id", "user_id", "title", "description", "status", "priority",
	"due_date", "tags", "created_at", "updated_at",
}

type taskStore struct {
	db database.Service
}

func NewTaskStore(db database.Service) TaskRepository {
	return &taskStore{db: db}
}

func (s *taskStore) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := sq.Insert("tasks").
		Columns("user_id", "title", "description", "status", "priority", "due_date", "tags").
		Values(task.UserID, task.Title, task.Description, task.Status, task.Priority, task.DueDate, task.Tags).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	err = s.db.Pool().QueryRow(ctx, sqlStr, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *taskStore) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	query := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanTask(s.db.Pool().QueryRow(ctx, sqlStr, args...))
}

func (s *taskStore) ListTasks(ctx context.Context, userID uuid.UUID, filter Filter) ([]*domain.Task, error) {
	query := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.Priority != nil {
		query = query.Where(sq.Eq{"priority": *filter.Priority})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := s.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (s *taskStore) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := sq.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("due_date", task.DueDate).
		Set("tags", task.Tags).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": task.ID, "user_id": task.UserID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	err = s.db.Pool().QueryRow(ctx, sqlStr, args...).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (s *taskStore) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	query := sq.Delete("tasks").
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	commandTag, err := s.db.Pool().Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (s *taskStore) scanTask(row pgx.Row) (*domain.Task, error) {
	task := &domain.Task{}
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.Tags,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}
