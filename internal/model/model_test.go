package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestUserBlockIsCurrentlyBlocked(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		block UserBlock
		want  bool
	}{
		{
			name:  "active permanent",
			block: UserBlock{BlockType: "permanent", IsActive: true},
			want:  true,
		},
		{
			name:  "deactivated permanent",
			block: UserBlock{BlockType: "permanent", IsActive: false},
			want:  false,
		},
		{
			name: "temporary before expiry",
			block: UserBlock{
				BlockType:    "temporary",
				IsActive:     true,
				BlockedUntil: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			},
			want: true,
		},
		{
			name: "temporary past expiry",
			block: UserBlock{
				BlockType:    "temporary",
				IsActive:     true,
				BlockedUntil: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
			},
			want: false,
		},
		{
			name:  "temporary without expiry time",
			block: UserBlock{BlockType: "temporary", IsActive: true},
			want:  false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.block.IsCurrentlyBlocked(now); got != tc.want {
				t.Errorf("IsCurrentlyBlocked = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsValidEmoji(t *testing.T) {
	for _, emoji := range ValidEmojis {
		if !IsValidEmoji(emoji) {
			t.Errorf("IsValidEmoji(%q) = false", emoji)
		}
	}
	for _, emoji := range []string{"🙈", "thumbs-up", ""} {
		if IsValidEmoji(emoji) {
			t.Errorf("IsValidEmoji(%q) = true", emoji)
		}
	}
}

func TestChatRoomAccessCodeHook(t *testing.T) {
	t.Run("private room generates code", func(t *testing.T) {
		room := ChatRoom{RoomType: "private"}
		if err := room.BeforeSave(nil); err != nil {
			t.Fatal(err)
		}
		if room.AccessCode == nil || len(*room.AccessCode) != 8 {
			t.Fatalf("AccessCode = %v, want 8 chars", room.AccessCode)
		}
	})

	t.Run("existing code kept", func(t *testing.T) {
		code := "ABCD1234"
		room := ChatRoom{RoomType: "private", AccessCode: &code}
		if err := room.BeforeSave(nil); err != nil {
			t.Fatal(err)
		}
		if *room.AccessCode != code {
			t.Errorf("AccessCode rewritten to %q", *room.AccessCode)
		}
	})

	t.Run("public room cleared", func(t *testing.T) {
		code := "ABCD1234"
		room := ChatRoom{RoomType: "public", AccessCode: &code}
		if err := room.BeforeSave(nil); err != nil {
			t.Fatal(err)
		}
		if room.AccessCode != nil {
			t.Errorf("AccessCode = %q, want nil", *room.AccessCode)
		}
	})
}
