package repository

import (
	"time"

	"huoban_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type presenceRepository struct {
	db *gorm.DB
}

// NewPresenceRepository 创建在线状态 Repository
func NewPresenceRepository(db *gorm.DB) PresenceRepository {
	return &presenceRepository{db: db}
}

// Upsert 插入或刷新 (user, room) 的在线状态
// 利用唯一索引做原子 upsert，避免并发心跳产生重复行
func (r *presenceRepository) Upsert(roomID uint, userUuid string, lastSeen time.Time) error {
	presence := model.UserPresence{
		RoomID:   roomID,
		UserUuid: userUuid,
		LastSeen: lastSeen,
		IsOnline: true,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_uuid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_seen": lastSeen, "is_online": true}),
	}).Create(&presence).Error
	if err != nil {
		return wrapDBErrorf(err, "刷新在线状态 room=%d user=%s", roomID, userUuid)
	}
	return nil
}

// MarkOffline 置离线，行保留；不存在时不报错
func (r *presenceRepository) MarkOffline(roomID uint, userUuid string) error {
	if err := r.db.Model(&model.UserPresence{}).
		Where("room_id = ? AND user_uuid = ?", roomID, userUuid).
		Update("is_online", false).Error; err != nil {
		return wrapDBErrorf(err, "置离线 room=%d user=%s", roomID, userUuid)
	}
	return nil
}

// FindOnline 查找 is_online 且 last_seen 晚于 cutoff 的状态行
func (r *presenceRepository) FindOnline(roomID uint, cutoff time.Time) ([]model.UserPresence, error) {
	var presences []model.UserPresence
	if err := r.db.Where("room_id = ? AND is_online = ? AND last_seen >= ?", roomID, true, cutoff).
		Order("last_seen DESC").Find(&presences).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询在线用户 room=%d", roomID)
	}
	return presences, nil
}

// DeleteByRoom 删除某房间全部状态行
func (r *presenceRepository) DeleteByRoom(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).Delete(&model.UserPresence{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间状态 room=%d", roomID)
	}
	return nil
}
