package usecase

import "github.com/nitwit45/todo-demo/internal/users/domain"

type UserProfileResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

type UpdateProfileInput struct {
	Email *string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=100"`
}

type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

func ToUserProfileResponse(user *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		Avatar:           user.Avatar,
		TwoFactorEnabled: user.TwoFactorEnabled,
	}
}
