package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustRegisterAdmin(t, "root")
	bob := env.mustRegister(t, "bob")

	t.Run("permanent block takes effect", func(t *testing.T) {
		resp, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
			BlockType: "permanent", Reason: "spam",
		})
		require.NoError(t, err)
		assert.Equal(t, "permanent", resp.BlockType)
		assert.Empty(t, resp.BlockedUntil)

		block, err := env.svc.Moderation.ActiveBlock(bob, time.Now())
		require.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, "spam", block.Reason)
	})

	t.Run("block sends notification mail", func(t *testing.T) {
		assert.Equal(t, 1, env.mail.count())
	})

	t.Run("new block deactivates old records", func(t *testing.T) {
		_, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
			BlockType: "temporary", Reason: "re-judged", DurationDays: 3,
		})
		require.NoError(t, err)

		active, err := env.repos.Block.FindActiveByUser(bob)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "re-judged", active[0].Reason)
	})

	t.Run("admin target forbidden", func(t *testing.T) {
		other := env.mustRegisterAdmin(t, "root2")
		_, err := env.svc.Moderation.BlockUser(ctx, admin, other, &request.BlockUserRequest{
			BlockType: "permanent", Reason: "nope",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})

	t.Run("temporary block requires duration", func(t *testing.T) {
		_, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
			BlockType: "temporary", Reason: "no duration",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	})

	t.Run("missing target returns user not exist", func(t *testing.T) {
		_, err := env.svc.Moderation.BlockUser(ctx, admin, "U0000000000000000000", &request.BlockUserRequest{
			BlockType: "permanent", Reason: "ghost",
		})
		require.Error(t, err)
		assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
	})
}

func TestActiveBlockExpiry(t *testing.T) {
	env := newTestEnv(t)
	bob := env.mustRegister(t, "bob")
	admin := env.mustRegisterAdmin(t, "root")

	// 已过期的临时封禁直接落库，绕过服务层的天数换算
	expired := &model.UserBlock{
		UserUuid:  bob,
		BlockedBy: admin,
		BlockType: "temporary",
		Reason:    "old offence",
		BlockedUntil: sql.NullTime{
			Time:  time.Now().Add(-time.Hour),
			Valid: true,
		},
		IsActive: true,
	}
	require.NoError(t, env.repos.Block.Create(expired))

	t.Run("expired temporary block not effective", func(t *testing.T) {
		block, err := env.svc.Moderation.ActiveBlock(bob, time.Now())
		require.NoError(t, err)
		assert.Nil(t, block)
	})

	t.Run("latest record wins when several coexist", func(t *testing.T) {
		recent := &model.UserBlock{
			UserUuid:  bob,
			BlockedBy: admin,
			BlockType: "temporary",
			Reason:    "new offence",
			BlockedUntil: sql.NullTime{
				Time:  time.Now().Add(24 * time.Hour),
				Valid: true,
			},
			IsActive: true,
		}
		require.NoError(t, env.repos.Block.Create(recent))

		block, err := env.svc.Moderation.ActiveBlock(bob, time.Now())
		require.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, "new offence", block.Reason)
	})

	t.Run("sweep deactivates expired records", func(t *testing.T) {
		resp, err := env.svc.Moderation.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Deactivated)
	})
}

func TestUnblockUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustRegisterAdmin(t, "root")
	bob := env.mustRegister(t, "bob")

	_, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
		BlockType: "permanent", Reason: "spam",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Moderation.UnblockUser(ctx, admin, bob))
	block, err := env.svc.Moderation.ActiveBlock(bob, time.Now())
	require.NoError(t, err)
	assert.Nil(t, block)

	// 未封禁时幂等成功
	require.NoError(t, env.svc.Moderation.UnblockUser(ctx, admin, bob))
}

func TestListBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustRegisterAdmin(t, "root")
	bob := env.mustRegister(t, "bob")
	carol := env.mustRegister(t, "carol")

	_, err := env.svc.Moderation.BlockUser(ctx, admin, bob, &request.BlockUserRequest{
		BlockType: "permanent", Reason: "spam",
	})
	require.NoError(t, err)
	_, err = env.svc.Moderation.BlockUser(ctx, admin, carol, &request.BlockUserRequest{
		BlockType: "temporary", Reason: "flood", DurationDays: 1,
	})
	require.NoError(t, err)

	blocked, err := env.svc.Moderation.ListBlocked(ctx)
	require.NoError(t, err)
	require.Len(t, blocked, 2)

	usernames := []string{blocked[0].Username, blocked[1].Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, usernames)
}
