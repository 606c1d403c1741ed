package repository

import (
	"context"
	"errors"

	"github.com/nitwit45/todo-demo/internal/database"
	"github.com/nitwit45/todo-demo/internal/users/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userStore struct {
	db database.Service
}

func NewUserStore(db database.Service) UserRepository {
	return &userStore{db: db}
}

func (s *userStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, name, avatar, two_factor_status = 'ENABLED', created_at, updated_at
			  FROM users WHERE id = $1`

	user := &domain.User{}
	err := s.db.Pool().QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.TwoFactorEnabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userStore) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users SET email = $2, name = $3, updated_at = NOW()
			  WHERE id = $1
			  RETURNING updated_at`

	err := s.db.Pool().QueryRow(ctx, query, user.ID, user.Email, user.Name).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userStore) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, avatarURL)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
