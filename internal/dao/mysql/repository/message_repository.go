package repository

import (
	"huoban_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindSince 查找房间内 ID 严格大于 sinceID 的消息
// 按 ID 升序（权威顺序），最多 limit 条
func (r *messageRepository) FindSince(roomID uint, sinceID uint, limit int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("room_id = ? AND id > ?", roomID, sinceID).
		Order("id ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 room=%d since=%d", roomID, sinceID)
	}
	return messages, nil
}

// FindRecent 查找房间最近 limit 条消息，按 ID 升序返回
func (r *messageRepository) FindRecent(roomID uint, limit int) ([]model.Message, error) {
	var messages []model.Message
	// 先倒序取最近 limit 条，再正序排列
	if err := r.db.Where("room_id = ?", roomID).
		Order("id DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询历史消息 room=%d", roomID)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// FindByIDInRoom 查找房间内指定 ID 的消息
func (r *messageRepository) FindByIDInRoom(roomID uint, messageID uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("id = ? AND room_id = ?", messageID, roomID).
		First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 id=%d room=%d", messageID, roomID)
	}
	return &message, nil
}

// FindIDsByRoom 查找某房间全部消息 ID（级联清理用）
func (r *messageRepository) FindIDsByRoom(roomID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Message{}).
		Where("room_id = ?", roomID).Pluck("id", &ids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间消息ID room=%d", roomID)
	}
	return ids, nil
}

// DeleteByRoom 删除某房间全部消息
func (r *messageRepository) DeleteByRoom(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间消息 room=%d", roomID)
	}
	return nil
}
