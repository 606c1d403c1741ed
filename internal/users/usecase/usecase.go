package usecase

import (
	"context"
	"mime/multipart"
)

type UserUsecase interface {
	GetUserProfile(ctx context.Context, userID string) (UserProfileResponse, error)
	UpdateUserProfile(ctx context.Context, userID string, input UpdateProfileInput) (UserProfileResponse, error)
	UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (AvatarResponse, error)
}
