package repository

import (
	"time"

	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"

	"gorm.io/gorm"
)

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository 创建封禁记录 Repository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// FindActiveByUser 查找某用户全部生效中的封禁记录
// 最新创建的排在最前，多条并存时以它为准
func (r *blockRepository) FindActiveByUser(userUuid string) ([]model.UserBlock, error) {
	var blocks []model.UserBlock
	if err := r.db.Where("user_uuid = ? AND is_active = ?", userUuid, true).
		Order("created_at DESC, id DESC").Find(&blocks).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询封禁记录 user=%s", userUuid)
	}
	return blocks, nil
}

// DeactivateByUser 停用某用户全部生效中的封禁记录
func (r *blockRepository) DeactivateByUser(userUuid string) (int64, error) {
	res := r.db.Model(&model.UserBlock{}).
		Where("user_uuid = ? AND is_active = ?", userUuid, true).
		Update("is_active", false)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "停用封禁记录 user=%s", userUuid)
	}
	return res.RowsAffected, nil
}

// Create 创建封禁记录
func (r *blockRepository) Create(block *model.UserBlock) error {
	if err := r.db.Create(block).Error; err != nil {
		return wrapDBError(err, "创建封禁记录")
	}
	return nil
}

// DeactivateExpired 停用全部已过期的临时封禁（外部定时任务触发）
func (r *blockRepository) DeactivateExpired(now time.Time) (int64, error) {
	res := r.db.Model(&model.UserBlock{}).
		Where("block_type = ? AND is_active = ? AND blocked_until IS NOT NULL AND blocked_until <= ?",
			constants.BLOCK_TYPE_TEMPORARY, true, now).
		Update("is_active", false)
	if res.Error != nil {
		return 0, wrapDBError(res.Error, "清扫过期封禁")
	}
	return res.RowsAffected, nil
}

// FindAllActive 查找全部生效中的封禁记录（管理端看板）
func (r *blockRepository) FindAllActive() ([]model.UserBlock, error) {
	var blocks []model.UserBlock
	if err := r.db.Where("is_active = ?", true).
		Order("created_at DESC, id DESC").Find(&blocks).Error; err != nil {
		return nil, wrapDBError(err, "查询封禁看板")
	}
	return blocks, nil
}
