package repository

import (
	"errors"

	"huoban_chat_server/internal/model"

	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建私密房间成员 Repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Exists 成员关系是否存在
func (r *memberRepository) Exists(roomID uint, userUuid string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_id = ? AND user_uuid = ?", roomID, userUuid).Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询成员关系 room=%d user=%s", roomID, userUuid)
	}
	return count > 0, nil
}

// Create 创建成员关系
// 唯一索引冲突视为已加入，幂等处理
func (r *memberRepository) Create(member *model.RoomMember) error {
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return wrapDBError(err, "创建成员关系")
	}
	return nil
}

// Delete 删除成员关系（硬删除）
func (r *memberRepository) Delete(roomID uint, userUuid string) error {
	if err := r.db.Unscoped().
		Where("room_id = ? AND user_uuid = ?", roomID, userUuid).
		Delete(&model.RoomMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除成员关系 room=%d user=%s", roomID, userUuid)
	}
	return nil
}

// FindRoomIDsByUser 查找某用户加入的全部房间 ID
func (r *memberRepository) FindRoomIDsByUser(userUuid string) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.RoomMember{}).
		Where("user_uuid = ?", userUuid).Pluck("room_id", &ids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询加入房间 user=%s", userUuid)
	}
	return ids, nil
}

// DeleteByRoom 删除某房间全部成员关系
func (r *memberRepository) DeleteByRoom(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).Delete(&model.RoomMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间成员 room=%d", roomID)
	}
	return nil
}

// CountByRoom 统计某房间成员数
func (r *memberRepository) CountByRoom(roomID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计房间成员 room=%d", roomID)
	}
	return count, nil
}
