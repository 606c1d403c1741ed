package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidUserEmail   = errors.New("email format is invalid")
	ErrInvalidUserName    = errors.New("name must be between 2 and 100 characters")
	ErrAvatarUploadFailed = errors.New("failed to upload avatar")
	ErrAvatarFileRequired = errors.New("avatar file is required")
)
