package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/dayplanapp/dayplan-server/internal/errors"
)

func TestAuthService_RegisterLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "anna@example.com",
		Password:    "correct horse battery",
		DisplayName: "Anna",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// Registration seeds a starter checklist category.
	cats, err := env.checklist.ListCategories(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "General", cats[0].Name)

	login, err := env.auth.Login(ctx, LoginRequest{
		Email:    "anna@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := RegisterRequest{
		Email:       "dup@example.com",
		Password:    "password-one",
		DisplayName: "First",
	}
	_, err := env.auth.Register(ctx, req)
	require.NoError(t, err)

	req.DisplayName = "Second"
	_, err = env.auth.Register(ctx, req)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "bob@example.com",
		Password:    "the right one",
		DisplayName: "Bob",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "bob@example.com", Password: "the wrong one"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown email yields the same error so accounts can't be probed.
	_, err = env.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever here"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "carol@example.com",
		Password:    "password1234",
		DisplayName: "Carol",
	})
	require.NoError(t, err)

	refreshed, err := env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is dead.
	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "dave@example.com",
		Password:    "password1234",
		DisplayName: "Dave",
	})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, reg.RefreshToken))

	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)

	// Logging out twice is harmless.
	assert.NoError(t, env.auth.Logout(ctx, reg.RefreshToken))
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "eve@example.com",
		Password:    "password1234",
		DisplayName: "Eve",
	})
	require.NoError(t, err)

	claims, err := env.auth.VerifyAccessToken(reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = env.auth.VerifyAccessToken("v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
