package domain

// TwoFactorStatus is the enrollment phase of a user's second factor.
type TwoFactorStatus string

const (
	TwoFactorDisabled TwoFactorStatus = "DISABLED"
	TwoFactorPending  TwoFactorStatus = "PENDING"
	TwoFactorEnabled  TwoFactorStatus = "ENABLED"
)

// TwoFactorState pairs the enrollment status with the encrypted secret. The
// constructors are the only way to build one, so ENABLED without a secret is
// unrepresentable. Transitions: DISABLED -> PENDING (setup, repeatable,
// last write wins) -> ENABLED (verified code) -> DISABLED (clears secret).
type TwoFactorState struct {
	status          TwoFactorStatus
	encryptedSecret string
}

func NewTwoFactorDisabled() TwoFactorState {
	return TwoFactorState{status: TwoFactorDisabled}
}

func NewTwoFactorPending(encryptedSecret string) (TwoFactorState, error) {
	if encryptedSecret == "" {
		return TwoFactorState{}, ErrTwoFactorSecretRequired
	}
	return TwoFactorState{status: TwoFactorPending, encryptedSecret: encryptedSecret}, nil
}

// NewTwoFactorState rebuilds a state from its persisted columns.
func NewTwoFactorState(status TwoFactorStatus, encryptedSecret string) (TwoFactorState, error) {
	switch status {
	case TwoFactorDisabled:
		if encryptedSecret != "" {
			return TwoFactorState{}, ErrTwoFactorNotEnabled
		}
		return NewTwoFactorDisabled(), nil
	case TwoFactorPending, TwoFactorEnabled:
		if encryptedSecret == "" {
			return TwoFactorState{}, ErrTwoFactorSecretRequired
		}
		return TwoFactorState{status: status, encryptedSecret: encryptedSecret}, nil
	default:
		return TwoFactorState{}, ErrTwoFactorNotEnabled
	}
}

// Verified promotes a pending enrollment to enabled. The secret carries over.
func (s TwoFactorState) Verified() (TwoFactorState, error) {
	if s.status != TwoFactorPending {
		return TwoFactorState{}, ErrTwoFactorNotPending
	}
	return TwoFactorState{status: TwoFactorEnabled, encryptedSecret: s.encryptedSecret}, nil
}

func (s TwoFactorState) Status() TwoFactorStatus {
	if s.status == "" {
		return TwoFactorDisabled
	}
	return s.status
}

func (s TwoFactorState) Enabled() bool {
	return s.status == TwoFactorEnabled
}

func (s TwoFactorState) Pending() bool {
	return s.status == TwoFactorPending
}

// EncryptedSecret returns the stored secret and whether one is present.
func (s TwoFactorState) EncryptedSecret() (string, bool) {
	if s.encryptedSecret == "" {
		return "", false
	}
	return s.encryptedSecret, true
}
