package test

import (
	"context"
	"testing"
	"time"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/internal/auth/usecase"
	"github.com/nitwit45/todo-demo/pkg/crypto"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/mailer"
	"github.com/nitwit45/todo-demo/pkg/password"
	"github.com/nitwit45/todo-demo/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.Init()
}

func newTokenManager(t *testing.T) *token.Manager {
	t.Helper()
	manager, err := token.NewManager(token.Config{
		AccessSecret:  []byte("test-access-secret-test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret-test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return manager
}

func newSecretCipher(t *testing.T) *crypto.SecretCipher {
	t.Helper()
	cipher, err := crypto.NewSecretCipher("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	return cipher
}

func setupService(t *testing.T) (*MockUserRepository, usecase.AuthUsecase, *token.Manager, *crypto.SecretCipher) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockUserRepository(ctrl)
	tokens := newTokenManager(t)
	cipher := newSecretCipher(t)
	mockMailer := &mockMailer{}

	service := usecase.NewAuthService(mockRepo, tokens, cipher, mockMailer)
	return mockRepo, service, tokens, cipher
}

type mockMailer struct {
	sendCalls []sendCall
}

var _ mailer.Mailer = (*mockMailer)(nil)

type sendCall struct {
	to       string
	template string
	data     map[string]any
}

func (m *mockMailer) SendMail(to string, id string, data map[string]any) error {
	m.sendCalls = append(m.sendCalls, sendCall{to: to, template: id, data: data})
	return nil
}

func (m *mockMailer) SendMailAsync(to string, id string, data map[string]any, operationName string) {
	// Tests execute synchronously to avoid race conditions
	_ = m.SendMail(to, id, data)
}

func existingUser(t *testing.T, email, plaintext string) *domain.UserAuth {
	t.Helper()
	hash, err := password.HashPassword(plaintext)
	require.NoError(t, err)
	return &domain.UserAuth{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Ada Lovelace",
		PasswordHash: hash,
		TwoFactor:    domain.NewTwoFactorDisabled(),
	}
}

func TestSignup_Success(t *testing.T) {
	mockRepo, service, tokens, _ := setupService(t)

	ctx := context.Background()
	input := usecase.SignupInput{
		Email:    "ada@example.com",
		Password: "pw12345678",
		Name:     "Ada Lovelace",
	}

	userID := uuid.New()

	mockRepo.EXPECT().
		UserExistsByEmail(ctx, input.Email).
		Return(false, nil)

	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.UserAuth) (*domain.UserAuth, error) {
			match, err := password.ComparePassword(user.PasswordHash, input.Password)
			require.NoError(t, err)
			require.True(t, match, "stored hash must verify against the plaintext")
			require.NotEqual(t, input.Password, user.PasswordHash)

			user.ID = userID
			return user, nil
		})

	session, err := service.Signup(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, userID.String(), session.User.ID)
	assert.Equal(t, input.Email, session.User.Email)
	assert.False(t, session.User.TwoFactorEnabled)

	claims, err := tokens.VerifyAccess(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)

	refreshClaims, err := tokens.VerifyRefresh(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), refreshClaims.UserID)
}

func TestSignup_NormalizesEmail(t *testing.T) {
	mockRepo, service, _, _ := setupService(t)

	ctx := context.Background()
	input := usecase.SignupInput{
		Email:    "  Ada@Example.COM ",
		Password: "pw12345678",
		Name:     "Ada Lovelace",
	}

	mockRepo.EXPECT().
		UserExistsByEmail(ctx, "ada@example.com").
		Return(false, nil)

	mockRepo.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.UserAuth) (*domain.UserAuth, error) {
			assert.Equal(t, "ada@example.com", user.Email)
			user.ID = uuid.New()
			return user, nil
		})

	_, err := service.Signup(ctx, input)
	require.NoError(t, err)
}

func TestSignup_UserAlreadyExists(t *testing.T) {
	mockRepo, service, _, _ := setupService(t)

	ctx := context.Background()
	input := usecase.SignupInput{
		Email:    "ada@example.com",
		Password: "pw12345678",
		Name:     "Ada Lovelace",
	}

	mockRepo.EXPECT().
		UserExistsByEmail(ctx, input.Email).
		Return(true, nil)

	_, err := service.Signup(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestSignup_PasswordTooShort(t *testing.T) {
	_, service, _, _ := setupService(t)

	_, err := service.Signup(context.Background(), usecase.SignupInput{
		Email:    "ada@example.com",
		Password: "short",
		Name:     "Ada Lovelace",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidUserPasswordFormat)
}

func TestLogin_Success(t *testing.T) {
	mockRepo, service, tokens, _ := setupService(t)

	ctx := context.Background()
	user := existingUser(t, "ada@example.com", "pw12345678")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, user.Email).
		Return(user, nil)

	output, err := service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "pw12345678",
	})

	require.NoError(t, err)
	require.NotNil(t, output.Session)
	assert.Nil(t, output.Challenge)

	claims, err := tokens.VerifyAccess(output.Session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	mockRepo, service, _, _ := setupService(t)

	ctx := context.Background()
	user := existingUser(t, "ada@example.com", "pw12345678")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, "nobody@example.com").
		Return(nil, domain.ErrUserNotFound)

	_, unknownErr := service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "pw12345678",
	})

	mockRepo.EXPECT().
		GetUserByEmail(ctx, user.Email).
		Return(user, nil)

	_, wrongPassErr := service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error(), "unknown email and wrong password must be indistinguishable")
}

func TestLogin_TooManyAttempts(t *testing.T) {
	mockRepo, service, _, _ := setupService(t)

	ctx := context.Background()
	user := existingUser(t, "ada@example.com", "pw12345678")

	mockRepo.EXPECT().
		GetUserByEmail(ctx, user.Email).
		Return(user, nil).
		Times(domain.MaxLoginAttempts)

	for i := 0; i < domain.MaxLoginAttempts; i++ {
		_, err := service.Login(ctx, usecase.LoginInput{
			Email:    user.Email,
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, err := service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "pw12345678",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTooManyLoginAttempts)
}

func TestLogin_TwoFactorChallenge(t *testing.T) {
	mockRepo, service, _, cipher := setupService(t)

	ctx := context.Background()
	user := existingUser(t, "ada@example.com", "pw12345678")

	encrypted, err := cipher.Encrypt("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	pending, err := domain.NewTwoFactorPending(encrypted)
	require.NoError(t, err)
	user.TwoFactor, err = pending.Verified()
	require.NoError(t, err)

	mockRepo.EXPECT().
		GetUserByEmail(ctx, user.Email).
		Return(user, nil)

	output, err := service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "pw12345678",
	})

	require.NoError(t, err)
	require.NotNil(t, output.Challenge)
	assert.Nil(t, output.Session, "no tokens before the second factor")
	assert.Equal(t, user.ID.String(), output.Challenge.UserID)
}

func TestRefresh_Success(t *testing.T) {
	_, service, tokens, _ := setupService(t)

	userID := uuid.New().String()
	refreshToken, err := tokens.IssueRefresh(userID, "ada@example.com")
	require.NoError(t, err)

	output, err := service.Refresh(context.Background(), usecase.RefreshInput{
		RefreshToken: refreshToken,
	})

	require.NoError(t, err)
	claims, err := tokens.VerifyAccess(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	_, service, tokens, _ := setupService(t)

	accessToken, err := tokens.IssueAccess(uuid.New().String(), "ada@example.com")
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), usecase.RefreshInput{
		RefreshToken: accessToken,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestCurrentUser_Success(t *testing.T) {
	mockRepo, service, _, _ := setupService(t)

	ctx := context.Background()
	user := existingUser(t, "ada@example.com", "pw12345678")

	mockRepo.EXPECT().
		GetUserByID(ctx, user.ID).
		Return(user, nil)

	info, err := service.CurrentUser(ctx, user.ID.String())

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), info.ID)
	assert.Equal(t, user.Email, info.Email)
}

func TestCurrentUser_InvalidID(t *testing.T) {
	_, service, _, _ := setupService(t)

	_, err := service.CurrentUser(context.Background(), "not-a-uuid")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}
