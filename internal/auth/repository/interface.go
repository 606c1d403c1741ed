package repository

import (
	"context"

	"github.com/nitwit45/todo-demo/internal/auth/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_user_repository.go -package=test github.com/nitwit45/todo-demo/internal/auth/repository UserRepository
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.UserAuth) (*domain.UserAuth, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.UserAuth, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.UserAuth, error)
	UpdateTwoFactor(ctx context.Context, userID uuid.UUID, state domain.TwoFactorState) error
}
