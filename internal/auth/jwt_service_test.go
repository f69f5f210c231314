package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(7, "wayand", "wayand@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "wayand", claims.Domain)
	assert.Equal(t, "wayand@example.com", claims.Email)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(7, "wayand", "wayand@example.com")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_VerificationTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateVerificationToken("wayand", "Wayand", "wayand@example.com", "hashed-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := service.ValidateVerificationToken(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, "wayand", claims.Domain)
	assert.Equal(t, "Wayand", claims.Name)
	assert.Equal(t, "wayand@example.com", claims.Email)
	assert.Equal(t, "hashed-password", claims.PasswordHash)
}

func TestJWTService_TokenKindsDoNotCross(t *testing.T) {
	service := NewJWTService("test-secret")

	// An access token has no JTI, so it cannot pass for a verification token.
	access, err := service.GenerateAccessToken(7, "wayand", "wayand@example.com")
	assert.NoError(t, err)

	_, err = service.ValidateVerificationToken(access)
	assert.Error(t, err)
}
