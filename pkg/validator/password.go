package validator

import (
	"github.com/go-playground/validator/v10"
)

// ValidatePassword enforces the account password policy: 8 to 128 characters.
func ValidatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 && len(password) <= 128
}

// ValidateTOTPCode accepts the six-digit codes authenticator apps produce.
func ValidateTOTPCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 6 {
		return false
	}
	for _, char := range code {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("accountpassword", ValidatePassword)
	v.RegisterValidation("totpcode", ValidateTOTPCode)
}
