package usecase

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/nitwit45/todo-demo/internal/users/domain"
	"github.com/nitwit45/todo-demo/internal/users/repository"
	"github.com/nitwit45/todo-demo/pkg/logger"

	"github.com/google/uuid"
)

// AvatarUploader abstracts the object storage behind avatar uploads.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader, userID string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type userService struct {
	repo     repository.UserRepository
	uploader AvatarUploader
}

func NewUserService(repo repository.UserRepository, uploader AvatarUploader) UserUsecase {
	return &userService{
		repo:     repo,
		uploader: uploader,
	}
}

func (s *userService) GetUserProfile(ctx context.Context, userID string) (UserProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserProfileResponse{}, err
	}

	return ToUserProfileResponse(user), nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID string, input UpdateProfileInput) (UserProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserProfileResponse{}, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		logger.Error("Failed to update user profile", err)
		return UserProfileResponse{}, err
	}

	return ToUserProfileResponse(updated), nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (AvatarResponse, error) {
	if s.uploader == nil {
		return AvatarResponse{}, domain.ErrAvatarUploadFailed
	}
	if file == nil || header == nil {
		return AvatarResponse{}, domain.ErrAvatarFileRequired
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return AvatarResponse{}, err
	}

	avatarURL, err := s.uploader.UploadAvatar(ctx, file, header, user.ID.String())
	if err != nil {
		logger.Error("Failed to upload avatar", err)
		return AvatarResponse{}, domain.ErrAvatarUploadFailed
	}

	if err := s.repo.UpdateAvatar(ctx, user.ID, avatarURL); err != nil {
		logger.Error("Failed to persist avatar URL", err)
		return AvatarResponse{}, err
	}

	// Generated default avatars live on dicebear, not in the bucket; only a
	// previously uploaded file needs cleanup. Best effort, the new avatar is
	// already live.
	if oldAvatar := user.Avatar; strings.Contains(oldAvatar, "/avatars/") {
		if err := s.uploader.Delete(ctx, oldAvatar); err != nil {
			logger.Warn("Failed to delete previous avatar", "error", err.Error())
		}
	}

	return AvatarResponse{Avatar: avatarURL}, nil
}

func (s *userService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
