package jwt

import (
	"testing"
	"time"

	"Health-Kitchen-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTServiceWith("secret", time.Hour)

	token, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestGetUserIDByToken_Rejects(t *testing.T) {
	token, err := NewJWTServiceWith("secret", time.Hour).GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewJWTServiceWith("other", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = NewJWTServiceWith("secret", time.Hour).GetUserIDByToken("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := &jwtService{secretKey: "secret", issuer: "HEALTH-KITCHEN", ttl: -time.Minute}
	token, err = expired.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)
	_, _, err = expired.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
