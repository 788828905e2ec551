package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	cfg := DefaultJWTConfig("test-secret")
	return NewJWTService(cfg)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := testJWTService()

	token, expiresAt, err := svc.GenerateAccessToken(42, "cashier1", RoleCashier)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "cashier1", user.Username)
	assert.Equal(t, RoleCashier, user.Role)
	assert.False(t, user.IsAdmin)
}

func TestJWTAdminFlag(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.GenerateAccessToken(1, "boss", RoleAdmin)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, _, err := testJWTService().GenerateAccessToken(1, "cashier1", RoleCashier)
	require.NoError(t, err)

	other := NewJWTService(DefaultJWTConfig("different-secret"))
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(1, "cashier1", RoleCashier)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.token")
	assert.Error(t, err)
}
