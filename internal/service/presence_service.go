package service

import (
	"context"
	"sort"
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dto/respond"
)

// presenceService 在线状态服务实现
type presenceService struct {
	repos       *repository.Repositories
	room        RoomService
	staleWindow time.Duration
}

// NewPresenceService 创建在线状态服务
// staleWindow 为在线判定的存活窗口，最近活跃时间早于该窗口视为离线
func NewPresenceService(repos *repository.Repositories, room RoomService, staleWindow time.Duration) PresenceService {
	return &presenceService{repos: repos, room: room, staleWindow: staleWindow}
}

// Heartbeat 刷新用户在房间内的活跃时间
func (s *presenceService) Heartbeat(ctx context.Context, userUuid, slug string) error {
	room, err := s.room.AuthorizeAccess(userUuid, slug)
	if err != nil {
		return err
	}
	return s.repos.Presence.Upsert(room.ID, userUuid, time.Now())
}

// MarkOffline 将用户在房间内置为离线
// 连接断开时立即生效，不等存活窗口过期
func (s *presenceService) MarkOffline(ctx context.Context, userUuid, slug string) error {
	room, err := s.repos.Room.FindBySlug(slug)
	if err != nil {
		return err
	}
	return s.repos.Presence.MarkOffline(room.ID, userUuid)
}

// GetOnlineUsers 查询房间内存活窗口内的在线用户
func (s *presenceService) GetOnlineUsers(ctx context.Context, viewerUuid, slug string) ([]respond.OnlineUserRespond, error) {
	room, err := s.room.AuthorizeAccess(viewerUuid, slug)
	if err != nil {
		return nil, err
	}
	return s.onlineUsersInRoom(room.ID, viewerUuid)
}

// onlineUsersInRoom 已鉴权场景下按房间 ID 查询在线用户
func (s *presenceService) onlineUsersInRoom(roomID uint, viewerUuid string) ([]respond.OnlineUserRespond, error) {
	cutoff := time.Now().Add(-s.staleWindow)
	rows, err := s.repos.Presence.FindOnline(roomID, cutoff)
	if err != nil {
		return nil, err
	}

	uuids := make([]string, 0, len(rows))
	for i := range rows {
		uuids = append(uuids, rows[i].UserUuid)
	}
	users, err := s.repos.User.FindByUuids(uuids)
	if err != nil {
		return nil, err
	}
	names := usernamesByUuid(users)

	result := make([]respond.OnlineUserRespond, 0, len(rows))
	for i := range rows {
		result = append(result, respond.OnlineUserRespond{
			Username:      names[rows[i].UserUuid],
			LastSeen:      rows[i].LastSeen.Format(clockLayout),
			IsCurrentUser: rows[i].UserUuid == viewerUuid,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})
	return result, nil
}
