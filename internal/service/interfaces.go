// Package service 实现业务逻辑层
// 所有 Service 接口在此文件定义，Handler 层依赖接口而非具体实现
package service

import (
	"context"
	"mime/multipart"
	"time"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/model"
)

// AuthService 认证服务接口
type AuthService interface {
	// Register 注册新用户
	Register(ctx context.Context, req *request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录，封禁中的用户拒绝登录
	Login(ctx context.Context, req *request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 Refresh Token 换取新令牌对（旋转刷新）
	RefreshToken(ctx context.Context, refreshToken string) (*respond.RefreshTokenRespond, error)
	// Logout 登出，吊销 Refresh Token
	Logout(ctx context.Context, userUuid string) error
}

// UserService 用户服务接口（管理端）
type UserService interface {
	// GetUserList 查询全部用户
	GetUserList(ctx context.Context) ([]respond.UserInfoRespond, error)
}

// RoomService 房间服务接口
type RoomService interface {
	// CreateRoom 创建房间，slug 由房间名派生且全局唯一
	CreateRoom(ctx context.Context, ownerUuid string, req *request.CreateRoomRequest) (*respond.RoomRespond, error)
	// GetPublicRooms 查询全部公开房间
	GetPublicRooms(ctx context.Context) ([]respond.RoomRespond, error)
	// GetPrivateRooms 查询用户拥有和加入的私密房间
	GetPrivateRooms(ctx context.Context, userUuid string) (*respond.PrivateRoomsRespond, error)
	// JoinPrivateRoom 通过访问码加入私密房间，重复加入幂等
	JoinPrivateRoom(ctx context.Context, userUuid, accessCode string) (*respond.RoomRespond, error)
	// LeaveRoom 退出私密房间，房主不可退出
	LeaveRoom(ctx context.Context, userUuid, slug string) error
	// DeleteRoom 删除房间及其全部关联数据，仅房主可操作
	DeleteRoom(ctx context.Context, userUuid, slug string) error
	// SetRoomType 切换房间类型，仅房主可操作
	// 切为公开清空访问码，切回私密生成新访问码
	SetRoomType(ctx context.Context, userUuid, slug, roomType string) (*respond.RoomRespond, error)
	// AuthorizeAccess 校验用户对房间的访问权
	// 公开房间放行；私密房间仅房主和成员放行，其余返回 CodeForbidden
	AuthorizeAccess(userUuid, slug string) (*model.ChatRoom, error)
}

// MessageService 消息服务接口
type MessageService interface {
	// SendMessage 向房间发送消息，可携带附件
	// 封禁中的用户拒绝发送；入库成功后推送给房间订阅者
	SendMessage(ctx context.Context, userUuid, slug, content string, file *multipart.FileHeader) (*respond.SendMessageRespond, error)
	// GetMessagesSince 增量拉取 ID 严格大于 since 的消息
	GetMessagesSince(ctx context.Context, userUuid, slug string, since uint, limit int) ([]respond.MessageRespond, error)
	// GetRoomHistory 进入房间时的初始视图：房间信息 + 最近消息 + 在线用户
	GetRoomHistory(ctx context.Context, userUuid, slug string) (*respond.RoomHistoryRespond, error)
}

// ReactionService 消息表情回应服务接口
type ReactionService interface {
	// ToggleReaction 切换表情回应：无则加，有则删
	ToggleReaction(ctx context.Context, userUuid, slug string, messageID uint, emoji string) (*respond.ToggleReactionRespond, error)
	// Summaries 批量查询消息的表情聚合，带查看者标志
	Summaries(ctx context.Context, messageIDs []uint, viewerUuid string) (map[uint]map[string]respond.ReactionSummaryRespond, error)
}

// PresenceService 在线状态服务接口
type PresenceService interface {
	// Heartbeat 刷新用户在房间内的活跃时间
	Heartbeat(ctx context.Context, userUuid, slug string) error
	// MarkOffline 将用户在房间内置为离线
	MarkOffline(ctx context.Context, userUuid, slug string) error
	// GetOnlineUsers 查询房间内存活窗口内的在线用户
	GetOnlineUsers(ctx context.Context, viewerUuid, slug string) ([]respond.OnlineUserRespond, error)
}

// ModerationService 封禁管理服务接口
type ModerationService interface {
	// ActiveBlock 查询用户当前生效的封禁记录，未封禁返回 nil
	// 多条并存时以最新创建的一条为准
	ActiveBlock(userUuid string, now time.Time) (*model.UserBlock, error)
	// BlockUser 封禁用户，管理员不可被封禁
	// 创建新记录前停用该用户全部旧记录
	BlockUser(ctx context.Context, adminUuid, targetUuid string, req *request.BlockUserRequest) (*respond.BlockRespond, error)
	// UnblockUser 解封用户，未封禁时幂等成功
	UnblockUser(ctx context.Context, adminUuid, targetUuid string) error
	// SweepExpired 停用全部已过期的临时封禁
	SweepExpired(ctx context.Context) (*respond.SweepRespond, error)
	// ListBlocked 查询当前封禁中的用户列表
	ListBlocked(ctx context.Context) ([]respond.BlockRespond, error)
}

// MessagePublisher 房间事件扇出接口，由聊天推送层实现
// Publish 不阻塞业务写路径，投递失败只影响实时推送不影响落库
type MessagePublisher interface {
	Publish(roomSlug string, payload []byte)
}

// PushEvent 推送给房间订阅者的事件信封
type PushEvent struct {
	Type string `json:"type"` // message / reaction
	Room string `json:"room"`
	Data any    `json:"data"`
}
