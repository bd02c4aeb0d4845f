package biz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbgplatform/mbg/internal/errs"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, VerifyPassword(hash, "s3cret"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	t.Run("success", func(t *testing.T) {
		resp, err := env.Auth.Register(ctx, RegisterInput{
			Email:     "Admin@Example.com",
			Password:  "s3cret",
			FirstName: "Ada",
			LastName:  "Admin",
			Role:      "ORG_ADMIN",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", resp.User.Email)
		assert.Equal(t, "Ada Admin", resp.User.FullName)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterInput{
			Email:    "admin@example.com",
			Password: "other",
			Role:     "PARENT",
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("unknown role is a bad request", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterInput{
			Email:    "other@example.com",
			Password: "s3cret",
			Role:     "WIZARD",
		})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterInput{Role: "PARENT"})
		require.Error(t, err)
		assert.Equal(t, errs.KindBadRequest, errs.KindOf(err))
		assert.NotEmpty(t, errs.FieldsOf(err))
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	_, err := env.Auth.Register(ctx, RegisterInput{
		Email:    "user@example.com",
		Password: "s3cret",
		Role:     "PARENT",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := env.Auth.Login(ctx, "USER@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", resp.User.Email)
		assert.Equal(t, "Bearer", resp.Tokens.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.Auth.Login(ctx, "user@example.com", "nope")
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.Auth.Login(ctx, "ghost@example.com", "s3cret")
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("disabled account", func(t *testing.T) {
		user, err := env.Store.Users.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)

		user.IsActive = false
		require.NoError(t, env.Store.Users.Update(ctx, user))

		_, err = env.Auth.Login(ctx, "user@example.com", "s3cret")
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})
}

func TestTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	resp, err := env.Auth.Register(ctx, RegisterInput{
		Email:    "token@example.com",
		Password: "s3cret",
		Role:     "SCHOOL_ADMIN",
	})
	require.NoError(t, err)

	t.Run("access token carries identity claims", func(t *testing.T) {
		claims, err := env.Auth.ParseToken(resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID.String(), claims.UserID)
		assert.Equal(t, "SCHOOL_ADMIN", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		tampered := resp.Tokens.AccessToken[:len(resp.Tokens.AccessToken)-2] + "xx"
		_, err := env.Auth.ParseToken(tampered)
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := env.Auth.ParseToken("not.a.token")
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("refresh produces a new pair", func(t *testing.T) {
		pair, err := env.Auth.Refresh(ctx, resp.Tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := env.Auth.Refresh(ctx, resp.Tokens.AccessToken)
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("refresh token cannot authenticate", func(t *testing.T) {
		_, _, err := env.Auth.AuthenticateToken(ctx, resp.Tokens.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("authenticate resolves the live user", func(t *testing.T) {
		user, claims, err := env.Auth.AuthenticateToken(ctx, resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, user.ID)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})
}

func TestExtractClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	resp, err := env.Auth.Register(ctx, RegisterInput{
		Email:    "claims@example.com",
		Password: "s3cret",
		Role:     "SUPER_ADMIN",
	})
	require.NoError(t, err)

	t.Run("present claim", func(t *testing.T) {
		role, ok, err := env.Auth.ExtractClaim(resp.Tokens.AccessToken, "role")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "SUPER_ADMIN", role)
	})

	t.Run("absent branch claim", func(t *testing.T) {
		branch, ok, err := env.Auth.ExtractClaim(resp.Tokens.AccessToken, "branch_id")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, branch)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, _, err := env.Auth.ExtractClaim("not.a.token", "role")
		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})
}

func TestPasswordHashNeverInJSON(t *testing.T) {
	env := newTestEnv(t)
	ctx := systemCtx()

	resp, err := env.Auth.Register(ctx, RegisterInput{
		Email:    "hidden@example.com",
		Password: "s3cret",
		Role:     "PARENT",
	})
	require.NoError(t, err)

	user, err := env.Store.Users.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotEmpty(t, user.PasswordHash)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), user.PasswordHash))
	assert.False(t, strings.Contains(string(raw), "password"))
}
