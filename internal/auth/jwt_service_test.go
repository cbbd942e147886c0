package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")
	sub := Subject{UserID: 7, Username: "demo", Role: "USER"}

	id, token, err := svc.GenerateAccessToken(sub)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "demo", claims.Username)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, id, claims.ID)

	ttl := svc.RemainingTTL(claims)
	assert.True(t, ttl > 14*time.Minute && ttl <= AccessTokenExpiry)
}

func TestJWTService_RefreshTokenLivesLonger(t *testing.T) {
	svc := NewJWTService("secret")
	_, token, err := svc.GenerateRefreshToken(Subject{UserID: 1, Username: "admin", Role: "ADMIN"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, svc.RemainingTTL(claims) > 6*24*time.Hour)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	_, token, err := NewJWTService("one").GenerateAccessToken(Subject{UserID: 1})
	require.NoError(t, err)

	_, err = NewJWTService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret")
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	_, token, err := svc.GenerateAccessToken(Subject{UserID: 1})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenStore_DisabledCache(t *testing.T) {
	store := NewTokenStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, store.StoreRefreshToken(ctx, "id", 3, time.Minute))
	_, err := store.GetRefreshToken(ctx, "id")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)

	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "id")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestJWTService_TokenUse(t *testing.T) {
	svc := NewJWTService("secret")
	sub := Subject{UserID: 2, Username: "bob", Role: "USER"}
	_, access, err := svc.GenerateAccessToken(sub)
	require.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(sub)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.True(t, claims.IsAccess())
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	claims, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.False(t, claims.IsAccess())
	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}
