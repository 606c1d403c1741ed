package usecase

import "context"

type AuthUsecase interface {
	Signup(ctx context.Context, input SignupInput) (Session, error)
	Login(ctx context.Context, input LoginInput) (LoginOutput, error)
	LoginTwoFactor(ctx context.Context, input TwoFactorLoginInput) (Session, error)
	Refresh(ctx context.Context, input RefreshInput) (RefreshOutput, error)
	CurrentUser(ctx context.Context, userID string) (UserInfo, error)
	SetupTwoFactor(ctx context.Context, userID string) (SetupTwoFactorOutput, error)
	VerifyTwoFactor(ctx context.Context, userID string, input VerifyTwoFactorInput) (VerifyTwoFactorOutput, error)
	DisableTwoFactor(ctx context.Context, userID string) error
}
