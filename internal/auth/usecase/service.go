package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/internal/auth/repository"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/mailer"
	"github.com/nitwit45/todo-demo/pkg/password"
	"github.com/nitwit45/todo-demo/pkg/token"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
)

const totpIssuer = "TaskFlow"

type AuthService struct {
	repo     repository.UserRepository
	tokens   *token.Manager
	secrets  SecretCipher
	mailer   mailer.Mailer
	attempts gcache.Cache
}

// SecretCipher guards TOTP secrets at rest.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

func NewAuthService(r repository.UserRepository, tokens *token.Manager, secrets SecretCipher, m mailer.Mailer) AuthUsecase {
	return &AuthService{
		repo:     r,
		tokens:   tokens,
		secrets:  secrets,
		mailer:   m,
		attempts: gcache.New(1000).LRU().Expiration(time.Minute * 15).Build(),
	}
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (Session, error) {
	if !domain.IsValidPassword(input.Password) {
		return Session{}, domain.ErrInvalidUserPasswordFormat
	}

	email := domain.NormalizeEmail(input.Email)

	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("Repository error checking user existence", err)
		return Session{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return Session{}, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		logger.Error("Password hashing error", err)
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.UserAuth{
		Email:        email,
		Name:         input.Name,
		Avatar:       domain.GenerateAvatar(input.Name),
		PasswordHash: hashedPassword,
		TwoFactor:    domain.NewTwoFactorDisabled(),
	}

	if err := user.Validate(); err != nil {
		return Session{}, err
	}

	// Concurrent signups with the same email race at the unique index; the
	// loser surfaces here as ErrUserAlreadyExists.
	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("Repository error creating user", err)
		return Session{}, err
	}

	if s.mailer != nil {
		s.mailer.SendMailAsync(createdUser.Email, "welcome-email", map[string]any{
			"NAME": createdUser.Name,
			"MAIL": createdUser.Email,
		}, "signup-welcome")
	}

	return s.issueSession(createdUser)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	attempts, err := s.attempts.Get(email)
	if err == nil {
		if attempts.(int) >= domain.MaxLoginAttempts {
			return LoginOutput{}, domain.ErrTooManyLoginAttempts
		}
	}

	// Unknown email and wrong password must be indistinguishable to callers.
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	passwordMatch, err := password.ComparePassword(user.PasswordHash, input.Password)
	if err != nil {
		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	if !passwordMatch {
		currentAttempts := 1
		if attempts != nil {
			currentAttempts = attempts.(int) + 1
		}

		if err := s.attempts.Set(email, currentAttempts); err != nil {
			logger.Error("Cache error updating login attempts")
		}

		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	s.attempts.Remove(email)

	if user.TwoFactor.Enabled() {
		return LoginOutput{
			Challenge: &TwoFactorChallenge{UserID: user.ID.String()},
		}, nil
	}

	session, err := s.issueSession(user)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{Session: &session}, nil
}

func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (RefreshOutput, error) {
	claims, err := s.tokens.VerifyRefresh(input.RefreshToken)
	if err != nil {
		return RefreshOutput{}, token.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccess(claims.UserID, claims.Email)
	if err != nil {
		logger.Error("Failed to mint access token on refresh", err)
		return RefreshOutput{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return RefreshOutput{AccessToken: accessToken}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (UserInfo, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return UserInfo{}, domain.ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, userUUID)
	if err != nil {
		return UserInfo{}, err
	}

	return ToUserInfo(user), nil
}

func (s *AuthService) issueSession(user *domain.UserAuth) (Session, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID.String(), user.Email)
	if err != nil {
		logger.Error("Failed to issue access token", err)
		return Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user.ID.String(), user.Email)
	if err != nil {
		logger.Error("Failed to issue refresh token", err)
		return Session{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return Session{
		User:         ToUserInfo(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
