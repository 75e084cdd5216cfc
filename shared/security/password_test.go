package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
		reason   string
	}{
		{
			name:     "too short",
			password: "weak",
			ok:       false,
			reason:   "password must be at least 8 characters long",
		},
		{
			name:     "multi-byte runes counted as characters",
			password: "Pässé1!",
			ok:       false,
			reason:   "password must be at least 8 characters long",
		},
		{
			name:     "no uppercase",
			password: "weakpassword",
			ok:       false,
			reason:   "password must contain an uppercase letter",
		},
		{
			name:     "no lowercase",
			password: "WEAKPASSWORD1!",
			ok:       false,
			reason:   "password must contain a lowercase letter",
		},
		{
			name:     "no digit",
			password: "WeakPassword!",
			ok:       false,
			reason:   "password must contain a digit",
		},
		{
			name:     "no special character",
			password: "WeakPassword1",
			ok:       false,
			reason:   "password must contain a special character",
		},
		{
			name:     "all rules pass",
			password: "WeakPassword1!",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ValidateStrength(tt.password)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("WeakPassword1!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "WeakPassword1!", hash)

	ok, err := VerifyPassword("WeakPassword1!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("WrongPassword1!", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
