package model

import "gorm.io/gorm"

// RoomMember 私密房间成员关联表
// 仅记录通过访问码加入的非房主成员；房主隐式永远是成员，不落行
type RoomMember struct {
	gorm.Model
	RoomID   uint   `gorm:"column:room_id;uniqueIndex:idx_room_user;not null;comment:房间ID"`
	UserUuid string `gorm:"column:user_uuid;uniqueIndex:idx_room_user;type:char(20);not null;comment:用户uuid"`
}

func (RoomMember) TableName() string {
	return "room_member"
}
