package repository

import (
	"context"

	"github.com/nitwit45/todo-demo/internal/users/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_user_repository.go -package=test github.com/nitwit45/todo-demo/internal/users/repository UserRepository
type UserRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
}
