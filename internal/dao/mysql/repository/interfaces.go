// Package repository 定义数据访问层接口和聚合结构
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"huoban_chat_server/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// ExistsByUsername 用户名是否已注册
	ExistsByUsername(username string) (bool, error)
	// Create 创建用户
	Create(user *model.UserInfo) error
	// FindAll 查找全部用户（管理端）
	FindAll() ([]model.UserInfo, error)
	// FindByUuids 按 UUID 集合批量查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
}

// BlockRepository 封禁记录数据访问接口
type BlockRepository interface {
	// FindActiveByUser 查找某用户全部生效中的封禁记录
	// 按创建时间倒序（最新优先），保证多条并存时判定结果确定
	FindActiveByUser(userUuid string) ([]model.UserBlock, error)
	// DeactivateByUser 停用某用户全部生效中的封禁记录，返回停用条数
	DeactivateByUser(userUuid string) (int64, error)
	// Create 创建封禁记录
	Create(block *model.UserBlock) error
	// DeactivateExpired 停用全部已过期的临时封禁，返回停用条数
	DeactivateExpired(now time.Time) (int64, error)
	// FindAllActive 查找全部生效中的封禁记录（管理端看板）
	FindAllActive() ([]model.UserBlock, error)
}

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	// FindBySlug 根据 slug 查找房间
	FindBySlug(slug string) (*model.ChatRoom, error)
	// FindByAccessCode 根据访问码查找私密房间
	FindByAccessCode(code string) (*model.ChatRoom, error)
	// ExistsBySlug 房间 slug 是否已占用
	ExistsBySlug(slug string) (bool, error)
	// Create 创建房间
	Create(room *model.ChatRoom) error
	// Save 保存房间（类型切换走这里以触发访问码 Hook）
	Save(room *model.ChatRoom) error
	// Delete 删除房间本体，关联数据由调用方在事务内清理
	Delete(roomID uint) error
	// FindPublic 查找全部公开房间，新建优先
	FindPublic() ([]model.ChatRoom, error)
	// FindPrivateByOwner 查找某用户拥有的私密房间
	FindPrivateByOwner(ownerUuid string) ([]model.ChatRoom, error)
	// FindByIDs 按 ID 集合查找房间
	FindByIDs(ids []uint) ([]model.ChatRoom, error)
}

// MemberRepository 私密房间成员数据访问接口
type MemberRepository interface {
	// Exists 成员关系是否存在
	Exists(roomID uint, userUuid string) (bool, error)
	// Create 创建成员关系（唯一索引冲突视为已加入）
	Create(member *model.RoomMember) error
	// Delete 删除成员关系（硬删除）
	Delete(roomID uint, userUuid string) error
	// FindRoomIDsByUser 查找某用户加入的全部房间 ID
	FindRoomIDsByUser(userUuid string) ([]uint, error)
	// DeleteByRoom 删除某房间全部成员关系
	DeleteByRoom(roomID uint) error
	// CountByRoom 统计某房间成员数
	CountByRoom(roomID uint) (int64, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(message *model.Message) error
	// FindSince 查找房间内 ID 严格大于 sinceID 的消息，按 ID 升序，最多 limit 条
	FindSince(roomID uint, sinceID uint, limit int) ([]model.Message, error)
	// FindRecent 查找房间最近 limit 条消息，按 ID 升序返回
	FindRecent(roomID uint, limit int) ([]model.Message, error)
	// FindByIDInRoom 查找房间内指定 ID 的消息
	FindByIDInRoom(roomID uint, messageID uint) (*model.Message, error)
	// FindIDsByRoom 查找某房间全部消息 ID（级联清理用）
	FindIDsByRoom(roomID uint) ([]uint, error)
	// DeleteByRoom 删除某房间全部消息
	DeleteByRoom(roomID uint) error
}

// ReactionRepository 消息回应数据访问接口
type ReactionRepository interface {
	// Find 查找 (message, user, emoji) 三元组对应的回应
	Find(messageID uint, userUuid, emoji string) (*model.MessageReaction, error)
	// Create 创建回应（唯一索引保证三元组不重复）
	Create(reaction *model.MessageReaction) error
	// Delete 删除回应
	Delete(id uint) error
	// FindByMessage 查找某条消息的全部回应，按创建顺序
	FindByMessage(messageID uint) ([]model.MessageReaction, error)
	// DeleteByMessages 删除一批消息的全部回应
	DeleteByMessages(messageIDs []uint) error
}

// PresenceRepository 在线状态数据访问接口
type PresenceRepository interface {
	// Upsert 插入或刷新 (user, room) 的在线状态
	Upsert(roomID uint, userUuid string, lastSeen time.Time) error
	// MarkOffline 置离线，行保留；不存在时不报错
	MarkOffline(roomID uint, userUuid string) error
	// FindOnline 查找 is_online 且 last_seen 晚于 cutoff 的状态行
	FindOnline(roomID uint, cutoff time.Time) ([]model.UserPresence, error)
	// DeleteByRoom 删除某房间全部状态行（仅房间级联删除时使用）
	DeleteByRoom(roomID uint) error
}
