// Package repository 定义数据访问层接口和聚合结构
// 本文件提供 Repository 聚合与事务支持
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db       *gorm.DB
	User     UserRepository
	Block    BlockRepository
	Room     RoomRepository
	Member   MemberRepository
	Message  MessageRepository
	Reaction ReactionRepository
	Presence PresenceRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		User:     NewUserRepository(db),
		Block:    NewBlockRepository(db),
		Room:     NewRoomRepository(db),
		Member:   NewMemberRepository(db),
		Message:  NewMessageRepository(db),
		Reaction: NewReactionRepository(db),
		Presence: NewPresenceRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
