package jwt

import (
	"foodgram-backend/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUserRoundTrip(t *testing.T) {
	svc := NewJWTService()

	token := svc.GenerateTokenUser("some-user-id", domain.RoleUser)
	require.NotEmpty(t, token)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "some-user-id", userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestTokenUserInvalid(t *testing.T) {
	svc := NewJWTService()

	_, _, err := svc.GetUserIDByToken("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestForgetPasswordTokenRoundTrip(t *testing.T) {
	svc := NewJWTService()

	token, err := svc.GenerateTokenForgetPassword(map[string]any{"user_id": "some-user-id"}, time.Minute*30)
	require.NoError(t, err)

	claims, err := svc.ValidateTokenForgetPassword(token)
	require.NoError(t, err)
	assert.Equal(t, "some-user-id", claims["user_id"])
}

func TestForgetPasswordTokenExpired(t *testing.T) {
	svc := NewJWTService()

	token, err := svc.GenerateTokenForgetPassword(map[string]any{"user_id": "some-user-id"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateTokenForgetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
