package service

import (
	"context"
	"testing"
	"time"

	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndValidateToken(t *testing.T) {
	env := setupServices(t)
	alice := testhelpers.CreateUser(t, env.db, "alice")
	auth := NewAuthService(env.db, "secret", time.Hour, nil)
	ctx := context.Background()

	token, err := auth.Login(ctx, " ALICE@example.com ", testhelpers.TestPassword)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	_, err = auth.Login(ctx, "alice@example.com", "Wrong1!pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login(ctx, "nobody@example.com", testhelpers.TestPassword)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginInactiveUser(t *testing.T) {
	env := setupServices(t)
	alice := testhelpers.CreateUser(t, env.db, "alice")
	auth := NewAuthService(env.db, "secret", time.Hour, nil)
	ctx := context.Background()

	token, err := auth.GenerateToken(alice.ID)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(alice).Update("is_active", false).Error)

	_, err = auth.Login(ctx, "alice@example.com", testhelpers.TestPassword)
	assert.EqualError(t, err, "User account is disabled")

	_, err = auth.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejects(t *testing.T) {
	env := setupServices(t)
	alice := testhelpers.CreateUser(t, env.db, "alice")
	ctx := context.Background()

	auth := NewAuthService(env.db, "secret", time.Hour, nil)
	other := NewAuthService(env.db, "other-secret", time.Hour, nil)
	forged, err := other.GenerateToken(alice.ID)
	require.NoError(t, err)

	_, err = auth.ValidateToken(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.ValidateToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	issued := time.Now().Add(-2 * time.Hour)
	auth.now = func() time.Time { return issued }
	expired, err := auth.GenerateToken(alice.ID)
	require.NoError(t, err)
	auth.now = time.Now
	_, err = auth.ValidateToken(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	deleted, err := auth.GenerateToken(999)
	require.NoError(t, err)
	_, err = auth.ValidateToken(ctx, deleted)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutWithoutRedisIsNoop(t *testing.T) {
	env := setupServices(t)
	alice := testhelpers.CreateUser(t, env.db, "alice")
	auth := NewAuthService(env.db, "secret", time.Hour, database.NewTokenDenylist(nil))
	ctx := context.Background()

	token, err := auth.GenerateToken(alice.ID)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, claims))
	_, err = auth.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupServices(t)
	client := testhelpers.SetupRedis(t)
	alice := testhelpers.CreateUser(t, env.db, "alice")
	auth := NewAuthService(env.db, "secret", time.Hour, database.NewTokenDenylist(client))
	ctx := context.Background()

	token, err := auth.GenerateToken(alice.ID)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, claims))
	_, err = auth.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	// a fresh token for the same user is unaffected
	fresh, err := auth.GenerateToken(alice.ID)
	require.NoError(t, err)
	_, err = auth.ValidateToken(ctx, fresh)
	assert.NoError(t, err)

	var user models.User
	require.NoError(t, env.db.First(&user, alice.ID).Error)
	assert.True(t, user.IsActive)
}
