package service

import (
	"context"
	"testing"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("register creates user with hashed password", func(t *testing.T) {
		resp, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{
			Username: "alice", Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Len(t, resp.Uuid, 20)

		user, err := env.repos.User.FindByUsername("alice")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", user.Password)
		assert.True(t, user.CheckPassword("password123"))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{
			Username: "alice", Password: "different456",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustRegister(t, "alice")

	t.Run("valid credentials return token pair", func(t *testing.T) {
		resp, err := env.svc.Auth.Login(ctx, &request.LoginRequest{
			Username: "alice", Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := env.svc.Auth.Login(ctx, &request.LoginRequest{
			Username: "alice", Password: "wrongpass",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
	})

	t.Run("unknown username rejected", func(t *testing.T) {
		_, err := env.svc.Auth.Login(ctx, &request.LoginRequest{
			Username: "nobody", Password: "password123",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
	})
}

func TestLoginBlockedGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustRegisterAdmin(t, "root")
	bob := env.mustRegister(t, "bob")

	_, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
		BlockType: "permanent", Reason: "spam",
	})
	require.NoError(t, err)

	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{
		Username: "bob", Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUserBlocked, errorx.GetCode(err))

	require.NoError(t, env.svc.Moderation.UnblockUser(ctx, admin, bob))
	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{
		Username: "bob", Password: "password123",
	})
	assert.NoError(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uuid := env.mustRegister(t, "alice")

	login, err := env.svc.Auth.Login(ctx, &request.LoginRequest{
		Username: "alice", Password: "password123",
	})
	require.NoError(t, err)

	t.Run("refresh issues new pair", func(t *testing.T) {
		resp, err := env.svc.Auth.RefreshToken(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, login.RefreshToken, resp.RefreshToken)

		// 换发后老令牌作废
		_, err = env.svc.Auth.RefreshToken(ctx, login.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := env.svc.Auth.RefreshToken(ctx, login.AccessToken)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	})

	t.Run("logout revokes refresh token", func(t *testing.T) {
		fresh, err := env.svc.Auth.Login(ctx, &request.LoginRequest{
			Username: "alice", Password: "password123",
		})
		require.NoError(t, err)
		require.NoError(t, env.svc.Auth.Logout(ctx, uuid))

		_, err = env.svc.Auth.RefreshToken(ctx, fresh.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	})
}
