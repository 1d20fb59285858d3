package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	manager := NewManager("secret", time.Hour)

	token, err := manager.GenerateAccessToken(7, "Alice")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "7", claims.Subject)
}

func TestManager_ExpiredToken(t *testing.T) {
	manager := NewManager("secret", -time.Minute)

	token, err := manager.GenerateAccessToken(7, "Alice")
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateAccessToken(7, "Alice")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Garbage(t *testing.T) {
	manager := NewManager("secret", time.Hour)
	_, err := manager.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
