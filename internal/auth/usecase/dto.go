package usecase

import "github.com/nitwit45/todo-demo/internal/auth/domain"

type SignupInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,accountpassword"`
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TwoFactorLoginInput struct {
	UserID string `json:"userId" form:"userId" validate:"required"`
	Code   string `json:"token" form:"token" validate:"required,totpcode"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" validate:"required"`
}

type VerifyTwoFactorInput struct {
	Code string `json:"token" form:"token" validate:"required,totpcode"`
}

// UserInfo is the public projection of a user. Password hash and 2FA secret
// never cross this boundary.
type UserInfo struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

// Session is a fully issued login: user projection plus both token classes.
type Session struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// TwoFactorChallenge is the login outcome when a second factor is required:
// no tokens yet, only the id the client echoes back with a code.
type TwoFactorChallenge struct {
	UserID string `json:"userId"`
}

// LoginOutput is a discriminated result: exactly one field is set.
type LoginOutput struct {
	Session   *Session
	Challenge *TwoFactorChallenge
}

type SetupTwoFactorOutput struct {
	QRCode string `json:"qrCode"`
	Secret string `json:"secret"`
}

type VerifyTwoFactorOutput struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

type RefreshOutput struct {
	AccessToken string `json:"accessToken"`
}

func ToUserInfo(user *domain.UserAuth) UserInfo {
	return UserInfo{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		Avatar:           user.Avatar,
		TwoFactorEnabled: user.TwoFactor.Enabled(),
	}
}
