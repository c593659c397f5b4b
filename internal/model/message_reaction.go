package model

import "gorm.io/gorm"

// MessageReaction 消息表情回应
// (message, user, emoji) 三元组唯一，重复提交表示取消（toggle 语义）
type MessageReaction struct {
	gorm.Model
	MessageID uint   `gorm:"column:message_id;uniqueIndex:idx_msg_user_emoji;not null;comment:消息ID"`
	UserUuid  string `gorm:"column:user_uuid;uniqueIndex:idx_msg_user_emoji;type:char(20);not null;comment:用户uuid"`
	Emoji     string `gorm:"column:emoji;uniqueIndex:idx_msg_user_emoji;type:varchar(10);not null;comment:表情"`
}

func (MessageReaction) TableName() string {
	return "message_reaction"
}

// ValidEmojis 允许的表情闭集（十个）
var ValidEmojis = []string{"👍", "👎", "❤️", "😂", "😮", "😢", "😡", "🎉", "🔥", "💯"}

// IsValidEmoji 校验表情是否在允许闭集内
func IsValidEmoji(emoji string) bool {
	for _, e := range ValidEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}
