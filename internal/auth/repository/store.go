package repository

import (
	"context"
	"errors"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type UserStore struct {
	db database.Service
}

func NewUserStore(db database.Service) UserRepository {
	return &UserStore{
		db: db,
	}
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.UserAuth) (*domain.UserAuth, error) {
	query := `INSERT INTO users (email, name, avatar, password_hash, two_factor_status)
			  VALUES ($1, $2, $3, $4, $5::two_factor_status)
			  RETURNING id, created_at, updated_at`

	err := s.db.Pool().QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Avatar,
		user.PasswordHash,
		user.TwoFactor.Status(),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func (s *UserStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email = $1 LIMIT 1`

	var exists int
	err := s.db.Pool().QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.UserAuth, error) {
	query := `SELECT id, email, name, avatar, password_hash, two_factor_status, two_factor_secret, created_at, updated_at
			  FROM users WHERE email = $1`

	return s.scanUser(s.db.Pool().QueryRow(ctx, query, email))
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.UserAuth, error) {
	query := `SELECT id, email, name, avatar, password_hash, two_factor_status, two_factor_secret, created_at, updated_at
			  FROM users WHERE id = $1`

	return s.scanUser(s.db.Pool().QueryRow(ctx, query, userID))
}

func (s *UserStore) UpdateTwoFactor(ctx context.Context, userID uuid.UUID, state domain.TwoFactorState) error {
	query := `UPDATE users SET two_factor_status = $2::two_factor_status, two_factor_secret = $3, updated_at = NOW()
			  WHERE id = $1`

	var secret *string
	if value, ok := state.EncryptedSecret(); ok {
		secret = &value
	}

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, state.Status(), secret)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) scanUser(row pgx.Row) (*domain.UserAuth, error) {
	user := &domain.UserAuth{}
	var status string
	var secret *string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.PasswordHash,
		&status,
		&secret,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	encryptedSecret := ""
	if secret != nil {
		encryptedSecret = *secret
	}

	state, err := domain.NewTwoFactorState(domain.TwoFactorStatus(status), encryptedSecret)
	if err != nil {
		return nil, err
	}
	user.TwoFactor = state

	return user, nil
}
