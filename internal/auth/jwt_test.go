package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("different-secret", time.Hour)

	token, err := manager.Generate(42)
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(42)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
