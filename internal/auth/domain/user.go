package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxLoginAttempts  = 5
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type UserAuth struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Avatar       string
	PasswordHash string
	TwoFactor    TwoFactorState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *UserAuth) Validate() error {
	if u.Email == "" {
		return ErrInvalidUserEmail
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidUserEmailFormat
	}

	if u.PasswordHash == "" {
		return ErrInvalidUserPassword
	}

	if u.Name == "" {
		return ErrInvalidUserName
	}

	if len(u.Name) < MinNameLength || len(u.Name) > MaxNameLength {
		return ErrInvalidUserNameLength
	}

	return nil
}

// NormalizeEmail lower-cases and trims so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}

func GenerateAvatar(name string) string {
	seed := "JD"
	if fields := strings.Fields(name); len(fields) > 0 {
		seed = ""
		for _, f := range fields {
			r, _ := utf8.DecodeRuneInString(f)
			seed += string(r)
		}
	}
	return "https://api.dicebear.com/6.x/initials/svg?seed=" + url.QueryEscape(seed)
}
