// Package model 定义数据库实体模型
// 本文件定义聊天房间模型
package model

import (
	"gorm.io/gorm"

	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/util/random"
)

// ChatRoom 聊天房间模型
// 公开房间任何登录用户可进入；私密房间通过访问码加入
type ChatRoom struct {
	gorm.Model

	// Name 房间名称
	Name string `gorm:"column:name;type:varchar(100);not null;comment:房间名称"`

	// Slug 房间 URL 标识，全局唯一
	Slug string `gorm:"column:slug;uniqueIndex;type:varchar(100);not null;comment:房间slug"`

	// RoomType 房间类型：public / private
	RoomType string `gorm:"column:room_type;type:varchar(10);not null;default:public;comment:房间类型"`

	// AccessCode 私密房间访问码
	// 不变式：仅私密房间非空（8 位大写字母数字）；切回公开时清空，切为私密时重新生成
	AccessCode *string `gorm:"column:access_code;type:char(8);comment:访问码"`

	// OwnerUuid 房主
	OwnerUuid string `gorm:"column:owner_uuid;index;type:char(20);not null;comment:房主uuid"`
}

// TableName 指定表名
func (ChatRoom) TableName() string {
	return "chat_room"
}

// BeforeSave GORM Hook：维护访问码与房间类型的一致性
// 私密房间缺访问码时生成，公开房间强制清空
func (r *ChatRoom) BeforeSave(tx *gorm.DB) error {
	switch r.RoomType {
	case constants.ROOM_TYPE_PRIVATE:
		if r.AccessCode == nil || *r.AccessCode == "" {
			code := random.GetAccessCode(constants.ACCESS_CODE_LENGTH)
			r.AccessCode = &code
		}
	default:
		r.AccessCode = nil
	}
	return nil
}

// IsPrivate 是否为私密房间
func (r *ChatRoom) IsPrivate() bool {
	return r.RoomType == constants.ROOM_TYPE_PRIVATE
}
