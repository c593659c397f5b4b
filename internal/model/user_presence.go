package model

import (
	"time"

	"gorm.io/gorm"
)

// UserPresence 用户房间在线状态
// (user, room) 唯一；离开房间只置 is_online=false，行保留
type UserPresence struct {
	gorm.Model
	RoomID   uint   `gorm:"column:room_id;uniqueIndex:idx_presence_room_user;not null;comment:房间ID"`
	UserUuid string `gorm:"column:user_uuid;uniqueIndex:idx_presence_room_user;type:char(20);not null;comment:用户uuid"`

	// LastSeen 最近活跃时间，由心跳、发消息、轮询刷新
	LastSeen time.Time `gorm:"column:last_seen;not null;comment:最近活跃时间"`

	// IsOnline 在线标志
	// 读取时还需结合 LastSeen 的存活窗口判定，见 presence service
	IsOnline bool `gorm:"column:is_online;default:true;comment:是否在线"`
}

func (UserPresence) TableName() string {
	return "user_presence"
}
