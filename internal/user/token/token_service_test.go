package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndValidateToken(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	tok, err := svc.CreateToken("janedoe", "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.ValidateToken("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "janedoe", claims["username"])
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestService_ValidateToken_AcceptsRawHeader(t *testing.T) {
	svc := NewService("test-secret", time.Minute)

	tok, err := svc.CreateToken("janedoe", "user-123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestService_ValidateToken_RejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tok, err := svc.CreateToken("janedoe", "user-123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.Error(t, err)
}

func TestService_ValidateToken_RejectsWrongSecret(t *testing.T) {
	svc := NewService("test-secret", time.Minute)
	other := NewService("different-secret", time.Minute)

	tok, err := svc.CreateToken("janedoe", "user-123")
	require.NoError(t, err)

	_, err = other.ValidateToken(tok)
	assert.Error(t, err)
}

func TestNewService_DefaultsTTLWhenZero(t *testing.T) {
	svc := NewService("test-secret", 0)
	assert.Equal(t, 15*time.Minute, svc.ttl)
}
