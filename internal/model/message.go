// Package model 定义数据库实体模型
// 本文件定义房间消息模型
package model

import (
	"gorm.io/gorm"
)

// Message 房间消息模型
// 对应数据库 message 表
// 房间内的读取顺序以自增 ID 为准（单调递增，作为权威排序键和轮询游标），
// CreatedAt 仅用于展示，创建后不再更新
type Message struct {
	gorm.Model

	// Uuid 消息对外标识
	// 雪花算法生成的 int64，bigint 类型避免溢出
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// RoomID 所属房间
	RoomID uint `gorm:"column:room_id;index;not null;comment:房间ID"`

	// SenderUuid 发送者 UUID
	SenderUuid string `gorm:"column:sender_uuid;index;type:char(20);not null;comment:发送者uuid"`

	// SenderName 发送者用户名
	// 冗余存储，避免每次查询消息时都要关联用户表
	SenderName string `gorm:"column:sender_name;type:varchar(30);not null;comment:发送者用户名"`

	// Content 消息文本内容
	// 仅当携带附件时允许为空，此时由服务层补一条占位文案
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// Type 消息类型：text / file / image
	Type string `gorm:"column:type;type:varchar(10);not null;default:text;comment:消息类型"`

	// FileUrl 附件访问路径
	// 附件本体存静态文件目录，这里只存定位路径
	FileUrl string `gorm:"column:file_url;type:varchar(255);comment:附件url"`

	// FileName 附件原始文件名
	FileName string `gorm:"column:file_name;type:varchar(255);comment:附件文件名"`

	// FileSize 附件大小（字节）
	FileSize int64 `gorm:"column:file_size;default:0;comment:附件大小"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
