// Package model 定义数据库实体模型
// 本文件定义用户封禁记录模型
package model

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"huoban_chat_server/pkg/constants"
)

// UserBlock 用户封禁记录
// 一个用户可以有多条历史封禁记录，约定最新一条 is_active 记录为当前生效记录，
// 创建新封禁时会先停用该用户的全部旧记录
type UserBlock struct {
	gorm.Model

	// UserUuid 被封禁用户
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:被封禁用户uuid"`

	// BlockedBy 操作管理员
	BlockedBy string `gorm:"column:blocked_by;type:char(20);not null;comment:操作管理员uuid"`

	// BlockType 封禁类型：temporary / permanent
	BlockType string `gorm:"column:block_type;type:varchar(10);not null;comment:封禁类型"`

	// Reason 封禁原因
	Reason string `gorm:"column:reason;type:TEXT;not null;comment:封禁原因"`

	// BlockedUntil 解封时间，永久封禁为 NULL
	BlockedUntil sql.NullTime `gorm:"column:blocked_until;comment:解封时间"`

	// IsActive 生效标志
	// 解封、改判或到期清扫时置为 false，记录保留
	IsActive bool `gorm:"column:is_active;index;default:true;comment:是否生效"`
}

// TableName 指定表名
func (UserBlock) TableName() string {
	return "user_block"
}

// IsCurrentlyBlocked 判断该记录在 now 时刻是否仍然生效
// 永久封禁只要 is_active 即生效；临时封禁还需未到解封时间
func (b *UserBlock) IsCurrentlyBlocked(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.BlockType == constants.BLOCK_TYPE_PERMANENT {
		return true
	}
	return b.BlockedUntil.Valid && now.Before(b.BlockedUntil.Time)
}
