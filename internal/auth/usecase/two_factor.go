package usecase

import (
	"context"
	"fmt"

	"github.com/nitwit45/todo-demo/internal/auth/domain"
	"github.com/nitwit45/todo-demo/pkg/logger"
	"github.com/nitwit45/todo-demo/pkg/totp"

	"github.com/google/uuid"
)

// SetupTwoFactor generates a fresh secret and parks the user in the pending
// state. Calling it again before verification simply re-rolls the secret.
func (s *AuthService) SetupTwoFactor(ctx context.Context, userID string) (SetupTwoFactorOutput, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return SetupTwoFactorOutput{}, domain.ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, userUUID)
	if err != nil {
		return SetupTwoFactorOutput{}, err
	}

	secret, err := totp.GenerateSecret(totpIssuer, user.Email)
	if err != nil {
		logger.Error("Failed to generate TOTP secret", err)
		return SetupTwoFactorOutput{}, fmt.Errorf("failed to generate secret: %w", err)
	}

	qrCode, err := totp.QRCodeDataURI(secret.ProvisioningURI)
	if err != nil {
		logger.Error("Failed to render QR code", err)
		return SetupTwoFactorOutput{}, fmt.Errorf("failed to render QR code: %w", err)
	}

	encryptedSecret, err := s.secrets.Encrypt(secret.Base32)
	if err != nil {
		logger.Error("Failed to encrypt TOTP secret", err)
		return SetupTwoFactorOutput{}, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	state, err := domain.NewTwoFactorPending(encryptedSecret)
	if err != nil {
		return SetupTwoFactorOutput{}, err
	}

	if err := s.repo.UpdateTwoFactor(ctx, userUUID, state); err != nil {
		logger.Error("Failed to store pending TOTP secret", err)
		return SetupTwoFactorOutput{}, fmt.Errorf("failed to store secret: %w", err)
	}

	return SetupTwoFactorOutput{
		QRCode: qrCode,
		Secret: secret.Base32,
	}, nil
}

// VerifyTwoFactor checks a code against the pending secret and, on success,
// flips enrollment to enabled. A failed code leaves the pending state intact.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, userID string, input VerifyTwoFactorInput) (VerifyTwoFactorOutput, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return VerifyTwoFactorOutput{}, domain.ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, userUUID)
	if err != nil {
		return VerifyTwoFactorOutput{}, err
	}

	if !user.TwoFactor.Pending() {
		return VerifyTwoFactorOutput{}, domain.ErrTwoFactorNotPending
	}

	if err := s.verifyCodeAgainst(user.TwoFactor, input.Code); err != nil {
		return VerifyTwoFactorOutput{}, err
	}

	enabled, err := user.TwoFactor.Verified()
	if err != nil {
		return VerifyTwoFactorOutput{}, err
	}

	if err := s.repo.UpdateTwoFactor(ctx, userUUID, enabled); err != nil {
		logger.Error("Failed to enable two-factor", err)
		return VerifyTwoFactorOutput{}, fmt.Errorf("failed to enable two-factor: %w", err)
	}

	return VerifyTwoFactorOutput{TwoFactorEnabled: true}, nil
}

// LoginTwoFactor completes the second half of a 2FA login: password already
// verified, code now checked against the enabled secret.
func (s *AuthService) LoginTwoFactor(ctx context.Context, input TwoFactorLoginInput) (Session, error) {
	userUUID, err := uuid.Parse(input.UserID)
	if err != nil {
		return Session{}, domain.ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, userUUID)
	if err != nil {
		return Session{}, domain.ErrTwoFactorNotEnabled
	}

	if !user.TwoFactor.Enabled() {
		return Session{}, domain.ErrTwoFactorNotEnabled
	}

	if err := s.verifyCodeAgainst(user.TwoFactor, input.Code); err != nil {
		return Session{}, err
	}

	return s.issueSession(user)
}

// DisableTwoFactor clears enrollment unconditionally for an authenticated
// caller. No re-verification is demanded, matching the existing product
// behavior.
func (s *AuthService) DisableTwoFactor(ctx context.Context, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrInvalidUserID
	}

	if _, err := s.repo.GetUserByID(ctx, userUUID); err != nil {
		return err
	}

	if err := s.repo.UpdateTwoFactor(ctx, userUUID, domain.NewTwoFactorDisabled()); err != nil {
		logger.Error("Failed to disable two-factor", err)
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}

	return nil
}

func (s *AuthService) verifyCodeAgainst(state domain.TwoFactorState, code string) error {
	encryptedSecret, ok := state.EncryptedSecret()
	if !ok {
		return domain.ErrTwoFactorNotEnabled
	}

	secret, err := s.secrets.Decrypt(encryptedSecret)
	if err != nil {
		logger.Error("Failed to decrypt TOTP secret", err)
		return fmt.Errorf("failed to decrypt secret: %w", err)
	}

	if !totp.VerifyCode(code, secret) {
		return domain.ErrInvalidTwoFactorCode
	}

	return nil
}
