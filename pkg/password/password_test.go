package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := HashPassword("Password123!")
	require.NoError(t, err)

	second, err := HashPassword("Password123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)

	match, err := ComparePassword(hash, "Password123!")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = ComparePassword(hash, "WrongPassword123!")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestComparePassword_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plaintext", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComparePassword(tt.encoded, "Password123!")
			assert.ErrorIs(t, err, ErrInvalidHashFormat)
		})
	}
}
