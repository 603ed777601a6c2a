package jwt

import (
	"testing"
	"time"

	"medpractice-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := service.GenerateToken("alice", []string{"admin", "user"}, time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"admin", "user"}, claims.Roles)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "issuer-secret"})
	verifier := NewJWTService(config.JWTConfig{Secret: "other-secret"})

	token, err := issuer.GenerateToken("bob", []string{"user"}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := service.GenerateToken("carol", []string{"user"}, -time.Minute)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Garbage(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
