package service

import (
	"context"
	"strings"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"

	"go.uber.org/zap"
)

// roomService 房间服务实现
type roomService struct {
	repos *repository.Repositories
	cache redis.AsyncCacheService
}

// NewRoomService 创建房间服务
func NewRoomService(repos *repository.Repositories, cache redis.AsyncCacheService) RoomService {
	return &roomService{repos: repos, cache: cache}
}

// CreateRoom 创建房间
func (s *roomService) CreateRoom(ctx context.Context, ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error) {
	roomType := req.RoomType
	if roomType == "" {
		roomType = constants.ROOM_TYPE_PUBLIC
	}

	slug := slugify(req.Name)
	exists, err := s.repos.Room.ExistsBySlug(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorx.New(errorx.CodeConflict, "房间名已被占用")
	}

	room := &model.ChatRoom{
		Name:      strings.TrimSpace(req.Name),
		Slug:      slug,
		RoomType:  roomType,
		OwnerUuid: ownerUuid,
	}
	if err := s.repos.Room.Create(room); err != nil {
		return nil, err
	}
	zap.L().Info("room created",
		zap.String("slug", room.Slug),
		zap.String("type", room.RoomType),
		zap.String("owner", ownerUuid))

	resp := roomToRespond(room, ownerUuid)
	return &resp, nil
}

// GetPublicRooms 查询全部公开房间
func (s *roomService) GetPublicRooms(ctx context.Context) ([]respond.RoomRespond, error) {
	rooms, err := s.repos.Room.FindPublic()
	if err != nil {
		return nil, err
	}
	result := make([]respond.RoomRespond, 0, len(rooms))
	for i := range rooms {
		result = append(result, roomToRespond(&rooms[i], ""))
	}
	return result, nil
}

// GetPrivateRooms 查询用户拥有和加入的私密房间
func (s *roomService) GetPrivateRooms(ctx context.Context, userUuid string) (*respond.PrivateRoomsRespond, error) {
	owned, err := s.repos.Room.FindPrivateByOwner(userUuid)
	if err != nil {
		return nil, err
	}
	roomIDs, err := s.repos.Member.FindRoomIDsByUser(userUuid)
	if err != nil {
		return nil, err
	}
	joined, err := s.repos.Room.FindByIDs(roomIDs)
	if err != nil {
		return nil, err
	}

	resp := &respond.PrivateRoomsRespond{
		OwnedRooms:  make([]respond.RoomRespond, 0, len(owned)),
		JoinedRooms: make([]respond.RoomRespond, 0, len(joined)),
	}
	for i := range owned {
		r := roomToRespond(&owned[i], userUuid)
		// 房主列表附带成员数，便于管理
		if count, err := s.repos.Member.CountByRoom(owned[i].ID); err == nil {
			r.MemberCount = count
		}
		resp.OwnedRooms = append(resp.OwnedRooms, r)
	}
	for i := range joined {
		// 成员关系只存在于私密房间，公开房间防御性过滤
		if joined[i].IsPrivate() {
			resp.JoinedRooms = append(resp.JoinedRooms, roomToRespond(&joined[i], userUuid))
		}
	}
	return resp, nil
}

// JoinPrivateRoom 通过访问码加入私密房间
// 访问码忽略首尾空白并统一大写；无效访问码返回 CodeNotFound，不泄露房间存在性
func (s *roomService) JoinPrivateRoom(ctx context.Context, userUuid, accessCode string) (*respond.RoomRespond, error) {
	code := strings.ToUpper(strings.TrimSpace(accessCode))
	if len(code) != constants.ACCESS_CODE_LENGTH {
		return nil, errorx.New(errorx.CodeNotFound, "访问码无效")
	}
	room, err := s.repos.Room.FindByAccessCode(code)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "访问码无效")
		}
		return nil, err
	}

	// 房主隐式永远是成员，不落行
	if room.OwnerUuid != userUuid {
		if err := s.repos.Member.Create(&model.RoomMember{RoomID: room.ID, UserUuid: userUuid}); err != nil {
			return nil, err
		}
	}
	zap.L().Info("joined private room", zap.String("slug", room.Slug), zap.String("user", userUuid))

	resp := roomToRespond(room, userUuid)
	return &resp, nil
}

// LeaveRoom 退出私密房间
func (s *roomService) LeaveRoom(ctx context.Context, userUuid, slug string) error {
	room, err := s.repos.Room.FindBySlug(slug)
	if err != nil {
		return err
	}
	if room.OwnerUuid == userUuid {
		return errorx.New(errorx.CodeForbidden, "房主不能退出自己的房间")
	}
	if err := s.repos.Member.Delete(room.ID, userUuid); err != nil {
		return err
	}
	return s.repos.Presence.MarkOffline(room.ID, userUuid)
}

// DeleteRoom 删除房间及其全部关联数据
func (s *roomService) DeleteRoom(ctx context.Context, userUuid, slug string) error {
	room, err := s.repos.Room.FindBySlug(slug)
	if err != nil {
		return err
	}
	if room.OwnerUuid != userUuid {
		return errorx.New(errorx.CodeForbidden, "只有房主可以删除房间")
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		messageIDs, err := tx.Message.FindIDsByRoom(room.ID)
		if err != nil {
			return err
		}
		if err := tx.Reaction.DeleteByMessages(messageIDs); err != nil {
			return err
		}
		if err := tx.Message.DeleteByRoom(room.ID); err != nil {
			return err
		}
		if err := tx.Member.DeleteByRoom(room.ID); err != nil {
			return err
		}
		if err := tx.Presence.DeleteByRoom(room.ID); err != nil {
			return err
		}
		return tx.Room.Delete(room.ID)
	})
	if err != nil {
		return err
	}
	zap.L().Info("room deleted", zap.String("slug", slug), zap.String("owner", userUuid))
	return nil
}

// SetRoomType 切换房间类型
// 切换只改类型字段，访问码由模型 Hook 维护；成员关系保留，
// 房间切回私密后老成员仍可进入
func (s *roomService) SetRoomType(ctx context.Context, userUuid, slug, roomType string) (*respond.RoomRespond, error) {
	room, err := s.repos.Room.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if room.OwnerUuid != userUuid {
		return nil, errorx.New(errorx.CodeForbidden, "只有房主可以切换房间类型")
	}

	if room.RoomType != roomType {
		room.RoomType = roomType
		if err := s.repos.Room.Save(room); err != nil {
			return nil, err
		}
		zap.L().Info("room type changed", zap.String("slug", slug), zap.String("type", roomType))
	}

	resp := roomToRespond(room, userUuid)
	return &resp, nil
}

// AuthorizeAccess 校验用户对房间的访问权
func (s *roomService) AuthorizeAccess(userUuid, slug string) (*model.ChatRoom, error) {
	room, err := s.repos.Room.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !room.IsPrivate() || room.OwnerUuid == userUuid {
		return room, nil
	}
	isMember, err := s.repos.Member.Exists(room.ID, userUuid)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errorx.New(errorx.CodeForbidden, "没有进入该房间的权限")
	}
	return room, nil
}
