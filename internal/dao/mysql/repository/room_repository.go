package repository

import (
	"errors"

	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"

	"gorm.io/gorm"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间 Repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// FindBySlug 根据 slug 查找房间
func (r *roomRepository) FindBySlug(slug string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间 slug=%s", slug)
	}
	return &room, nil
}

// FindByAccessCode 根据访问码查找私密房间
// 条件里固定 room_type=private，避免访问码命中其它类型的房间
func (r *roomRepository) FindByAccessCode(code string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.Where("access_code = ? AND room_type = ?", code, constants.ROOM_TYPE_PRIVATE).
		First(&room).Error; err != nil {
		return nil, wrapDBError(err, "查询房间访问码")
	}
	return &room, nil
}

// ExistsBySlug 房间 slug 是否已占用
func (r *roomRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.ChatRoom{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询房间占用 slug=%s", slug)
	}
	return count > 0, nil
}

// Create 创建房间
// slug 唯一索引冲突返回 CodeConflict
func (r *roomRepository) Create(room *model.ChatRoom) error {
	if err := r.db.Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.Wrapf(err, errorx.CodeConflict, "房间 %s 已存在", room.Slug)
		}
		return wrapDBError(err, "创建房间")
	}
	return nil
}

// Save 保存房间
func (r *roomRepository) Save(room *model.ChatRoom) error {
	if err := r.db.Save(room).Error; err != nil {
		return wrapDBErrorf(err, "保存房间 slug=%s", room.Slug)
	}
	return nil
}

// Delete 删除房间本体
func (r *roomRepository) Delete(roomID uint) error {
	if err := r.db.Unscoped().Delete(&model.ChatRoom{}, roomID).Error; err != nil {
		return wrapDBErrorf(err, "删除房间 id=%d", roomID)
	}
	return nil
}

// FindPublic 查找全部公开房间，新建优先
func (r *roomRepository) FindPublic() ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	if err := r.db.Where("room_type = ?", constants.ROOM_TYPE_PUBLIC).
		Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "查询公开房间")
	}
	return rooms, nil
}

// FindPrivateByOwner 查找某用户拥有的私密房间
func (r *roomRepository) FindPrivateByOwner(ownerUuid string) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	if err := r.db.Where("owner_uuid = ? AND room_type = ?", ownerUuid, constants.ROOM_TYPE_PRIVATE).
		Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询私密房间 owner=%s", ownerUuid)
	}
	return rooms, nil
}

// FindByIDs 按 ID 集合查找房间
func (r *roomRepository) FindByIDs(ids []uint) ([]model.ChatRoom, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []model.ChatRoom
	if err := r.db.Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "查询房间集合")
	}
	return rooms, nil
}
