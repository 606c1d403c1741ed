package domain

import "errors"

var (
	ErrTaskNotFound                 = errors.New("task not found")
	ErrInvalidTaskID                = errors.New("invalid task id")
	ErrInvalidTaskTitle             = errors.New("title is required")
	ErrInvalidTaskTitleLength       = errors.New("title must be 200 characters or less")
	ErrInvalidTaskDescriptionLength = errors.New("description must be 2000 characters or less")
	ErrInvalidTaskStatus            = errors.New("invalid task status")
	ErrInvalidTaskPriority          = errors.New("invalid task priority")
)
