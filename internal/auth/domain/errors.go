package domain

import "errors"

var (
	ErrInvalidUserName           = errors.New("name is required")
	ErrInvalidUserNameLength     = errors.New("name must be between 2 and 100 characters")
	ErrInvalidUserEmail          = errors.New("email is required")
	ErrInvalidUserEmailFormat    = errors.New("email format is invalid")
	ErrInvalidUserPassword       = errors.New("password is required")
	ErrInvalidUserPasswordFormat = errors.New("password must be between 8 and 128 characters")
	ErrInvalidUserID             = errors.New("invalid user id")
	ErrUserNotFound              = errors.New("user not found")
	ErrUserAlreadyExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrTooManyLoginAttempts      = errors.New("too many login attempts, please try again later")
	ErrTwoFactorNotEnabled       = errors.New("two-factor authentication is not enabled")
	ErrTwoFactorNotPending       = errors.New("two-factor setup has not been started")
	ErrTwoFactorSecretRequired   = errors.New("two-factor secret is required")
	ErrInvalidTwoFactorCode      = errors.New("invalid two-factor code")
)
