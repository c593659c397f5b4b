package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accessCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCreateRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")

	t.Run("public room has no access code", func(t *testing.T) {
		resp, err := env.svc.Room.CreateRoom(ctx, owner, &request.CreateRoomRequest{
			Name: "General Chat", RoomType: "public",
		})
		require.NoError(t, err)
		assert.Equal(t, "general-chat", resp.Slug)
		assert.Equal(t, "public", resp.RoomType)
		assert.Empty(t, resp.AccessCode)
	})

	t.Run("private room gets generated access code", func(t *testing.T) {
		resp, err := env.svc.Room.CreateRoom(ctx, owner, &request.CreateRoomRequest{
			Name: "Secret Club", RoomType: "private",
		})
		require.NoError(t, err)
		assert.Regexp(t, accessCodePattern, resp.AccessCode)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		_, err := env.svc.Room.CreateRoom(ctx, owner, &request.CreateRoomRequest{
			Name: "General Chat", RoomType: "public",
		})
		require.Error(t, err)
		assert.True(t, errorx.IsConflict(err))
	})

	t.Run("room type defaults to public", func(t *testing.T) {
		resp, err := env.svc.Room.CreateRoom(ctx, owner, &request.CreateRoomRequest{Name: "Lobby"})
		require.NoError(t, err)
		assert.Equal(t, "public", resp.RoomType)
	})
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"General Chat", "general-chat"},
		{"Hello,  World!", "hello-world"},
		{"  trim me  ", "trim-me"},
		{"中文房间", "room"},
		{"Mixed 中文 Name", "mixed-name"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.name), "slugify(%q)", tc.name)
	}
}

func TestJoinPrivateRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	member := env.mustRegister(t, "bob")
	room := env.mustCreateRoom(t, owner, "Secret Club", "private")
	code := *room.AccessCode

	t.Run("join with valid code", func(t *testing.T) {
		resp, err := env.svc.Room.JoinPrivateRoom(ctx, member, code)
		require.NoError(t, err)
		assert.Equal(t, room.Slug, resp.Slug)
		// 非房主不可见访问码
		assert.Empty(t, resp.AccessCode)

		isMember, err := env.repos.Member.Exists(room.ID, member)
		require.NoError(t, err)
		assert.True(t, isMember)
	})

	t.Run("code normalized before lookup", func(t *testing.T) {
		carol := env.mustRegister(t, "carol")
		_, err := env.svc.Room.JoinPrivateRoom(ctx, carol, "  "+strings.ToLower(code)+" ")
		require.NoError(t, err)
	})

	t.Run("repeat join is idempotent", func(t *testing.T) {
		_, err := env.svc.Room.JoinPrivateRoom(ctx, member, code)
		require.NoError(t, err)
	})

	t.Run("owner join leaves no membership row", func(t *testing.T) {
		_, err := env.svc.Room.JoinPrivateRoom(ctx, owner, code)
		require.NoError(t, err)
		isMember, err := env.repos.Member.Exists(room.ID, owner)
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("invalid code returns not found", func(t *testing.T) {
		_, err := env.svc.Room.JoinPrivateRoom(ctx, member, "WRONGCOD")
		assert.True(t, errorx.IsNotFound(err))
	})
}

func TestAuthorizeAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	member := env.mustRegister(t, "bob")
	outsider := env.mustRegister(t, "mallory")

	publicRoom := env.mustCreateRoom(t, owner, "Town Square", "public")
	privateRoom := env.mustCreateRoom(t, owner, "Secret Club", "private")
	_, err := env.svc.Room.JoinPrivateRoom(ctx, member, *privateRoom.AccessCode)
	require.NoError(t, err)

	t.Run("public room open to anyone", func(t *testing.T) {
		_, err := env.svc.Room.AuthorizeAccess(outsider, publicRoom.Slug)
		assert.NoError(t, err)
	})

	t.Run("private room allows owner and member", func(t *testing.T) {
		_, err := env.svc.Room.AuthorizeAccess(owner, privateRoom.Slug)
		assert.NoError(t, err)
		_, err = env.svc.Room.AuthorizeAccess(member, privateRoom.Slug)
		assert.NoError(t, err)
	})

	t.Run("private room rejects non-member with forbidden", func(t *testing.T) {
		_, err := env.svc.Room.AuthorizeAccess(outsider, privateRoom.Slug)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})

	t.Run("missing room returns not found", func(t *testing.T) {
		_, err := env.svc.Room.AuthorizeAccess(owner, "no-such-room")
		assert.True(t, errorx.IsNotFound(err))
	})
}

func TestSetRoomType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	stranger := env.mustRegister(t, "bob")
	room := env.mustCreateRoom(t, owner, "Flip Room", "private")
	firstCode := *room.AccessCode

	t.Run("only owner can switch", func(t *testing.T) {
		_, err := env.svc.Room.SetRoomType(ctx, stranger, room.Slug, "public")
		require.Error(t, err)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})

	t.Run("switch to public clears access code", func(t *testing.T) {
		resp, err := env.svc.Room.SetRoomType(ctx, owner, room.Slug, "public")
		require.NoError(t, err)
		assert.Empty(t, resp.AccessCode)

		stored, err := env.repos.Room.FindBySlug(room.Slug)
		require.NoError(t, err)
		assert.Nil(t, stored.AccessCode)
	})

	t.Run("switch back to private generates fresh code", func(t *testing.T) {
		resp, err := env.svc.Room.SetRoomType(ctx, owner, room.Slug, "private")
		require.NoError(t, err)
		assert.Regexp(t, accessCodePattern, resp.AccessCode)
		assert.NotEqual(t, firstCode, resp.AccessCode)
	})
}

func TestLeaveRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	member := env.mustRegister(t, "bob")
	room := env.mustCreateRoom(t, owner, "Secret Club", "private")
	_, err := env.svc.Room.JoinPrivateRoom(ctx, member, *room.AccessCode)
	require.NoError(t, err)

	t.Run("owner cannot leave own room", func(t *testing.T) {
		err := env.svc.Room.LeaveRoom(ctx, owner, room.Slug)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})

	t.Run("member leaves and loses access", func(t *testing.T) {
		require.NoError(t, env.svc.Room.LeaveRoom(ctx, member, room.Slug))
		_, err := env.svc.Room.AuthorizeAccess(member, room.Slug)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})
}

func TestDeleteRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	member := env.mustRegister(t, "bob")
	room := env.mustCreateRoom(t, owner, "Doomed Room", "private")
	_, err := env.svc.Room.JoinPrivateRoom(ctx, member, *room.AccessCode)
	require.NoError(t, err)

	messageID := env.mustSendText(t, owner, room.Slug, "goodbye")
	_, err = env.svc.Reaction.ToggleReaction(ctx, member, room.Slug, messageID, "👍")
	require.NoError(t, err)

	t.Run("non-owner forbidden", func(t *testing.T) {
		err := env.svc.Room.DeleteRoom(ctx, member, room.Slug)
		require.Error(t, err)
		assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	})

	t.Run("owner delete cascades", func(t *testing.T) {
		require.NoError(t, env.svc.Room.DeleteRoom(ctx, owner, room.Slug))

		_, err := env.repos.Room.FindBySlug(room.Slug)
		assert.True(t, errorx.IsNotFound(err))

		messageIDs, err := env.repos.Message.FindIDsByRoom(room.ID)
		require.NoError(t, err)
		assert.Empty(t, messageIDs)

		isMember, err := env.repos.Member.Exists(room.ID, member)
		require.NoError(t, err)
		assert.False(t, isMember)
	})
}

func TestGetPrivateRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustRegister(t, "alice")
	member := env.mustRegister(t, "bob")

	owned := env.mustCreateRoom(t, owner, "Owned Room", "private")
	other := env.mustCreateRoom(t, member, "Joined Room", "private")
	_, err := env.svc.Room.JoinPrivateRoom(ctx, owner, *other.AccessCode)
	require.NoError(t, err)
	_, err = env.svc.Room.JoinPrivateRoom(ctx, member, *owned.AccessCode)
	require.NoError(t, err)

	resp, err := env.svc.Room.GetPrivateRooms(ctx, owner)
	require.NoError(t, err)
	require.Len(t, resp.OwnedRooms, 1)
	require.Len(t, resp.JoinedRooms, 1)
	assert.Equal(t, owned.Slug, resp.OwnedRooms[0].Slug)
	// 拥有的房间可见访问码，加入的不可见
	assert.NotEmpty(t, resp.OwnedRooms[0].AccessCode)
	assert.Equal(t, int64(1), resp.OwnedRooms[0].MemberCount)
	assert.Equal(t, other.Slug, resp.JoinedRooms[0].Slug)
	assert.Empty(t, resp.JoinedRooms[0].AccessCode)
}
