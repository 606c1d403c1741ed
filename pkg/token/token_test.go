package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, accessTTL time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		AccessTTL:     accessTTL,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(Config{AccessSecret: []byte("a")})
	assert.Error(t, err)

	_, err = NewManager(Config{
		AccessSecret:  []byte("same"),
		RefreshSecret: []byte("same"),
	})
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.IssueAccess("user-123", "john.doe@example.com")
	require.NoError(t, err)

	claims, err := m.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "john.doe@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.IssueRefresh("user-123", "john.doe@example.com")
	require.NoError(t, err)

	claims, err := m.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestVerify_RejectsWrongTokenClass(t *testing.T) {
	m := newTestManager(t, time.Minute)

	refresh, err := m.IssueRefresh("user-123", "john.doe@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.IssueAccess("user-123", "john.doe@example.com")
	require.NoError(t, err)

	_, err = m.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_ZeroTTLDefaults(t *testing.T) {
	m, err := NewManager(Config{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTTL, m.config.AccessTTL)
	assert.Equal(t, DefaultRefreshTTL, m.config.RefreshTTL)
}

func TestVerifyAccess_Expired(t *testing.T) {
	// A negative TTL mints a token whose expiry is already in the past.
	m := newTestManager(t, -time.Minute)

	tok, err := m.IssueAccess("user-123", "john.doe@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	m := newTestManager(t, time.Minute)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.VerifyAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyAccess_Tampered(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.IssueAccess("user-123", "john.doe@example.com")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = m.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
