package repository

import (
	"errors"

	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/errorx"

	"gorm.io/gorm"
)

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository 创建消息回应 Repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Find 查找 (message, user, emoji) 三元组对应的回应
func (r *reactionRepository) Find(messageID uint, userUuid, emoji string) (*model.MessageReaction, error) {
	var reaction model.MessageReaction
	if err := r.db.Where("message_id = ? AND user_uuid = ? AND emoji = ?", messageID, userUuid, emoji).
		First(&reaction).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询回应 message=%d user=%s", messageID, userUuid)
	}
	return &reaction, nil
}

// Create 创建回应
// 三元组唯一索引冲突返回 CodeConflict，由调用方按 toggle 语义处理
func (r *reactionRepository) Create(reaction *model.MessageReaction) error {
	if err := r.db.Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.Wrap(err, errorx.CodeConflict, "回应已存在")
		}
		return wrapDBError(err, "创建回应")
	}
	return nil
}

// Delete 删除回应
func (r *reactionRepository) Delete(id uint) error {
	if err := r.db.Unscoped().Delete(&model.MessageReaction{}, id).Error; err != nil {
		return wrapDBErrorf(err, "删除回应 id=%d", id)
	}
	return nil
}

// FindByMessage 查找某条消息的全部回应，按创建顺序
func (r *reactionRepository) FindByMessage(messageID uint) ([]model.MessageReaction, error) {
	var reactions []model.MessageReaction
	if err := r.db.Where("message_id = ?", messageID).
		Order("id ASC").Find(&reactions).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息回应 message=%d", messageID)
	}
	return reactions, nil
}

// DeleteByMessages 删除一批消息的全部回应
func (r *reactionRepository) DeleteByMessages(messageIDs []uint) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := r.db.Unscoped().
		Where("message_id IN ?", messageIDs).Delete(&model.MessageReaction{}).Error; err != nil {
		return wrapDBError(err, "删除消息回应")
	}
	return nil
}
