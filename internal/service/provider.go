package service

import (
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/infrastructure/email"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问业务层
type Services struct {
	Auth       AuthService
	User       UserService
	Room       RoomService
	Message    MessageService
	Reaction   ReactionService
	Presence   PresenceService
	Moderation ModerationService
}

// Options Service 层的外部依赖
type Options struct {
	Repos           *repository.Repositories
	Cache           redis.AsyncCacheService
	Mail            email.Sender
	Publisher       MessagePublisher // 可为 nil，此时关闭实时推送
	StaticFilePath  string
	PresenceWindow  time.Duration
	RefreshTokenTTL time.Duration
}

// noopPublisher 推送层未接入时的空实现
type noopPublisher struct{}

func (noopPublisher) Publish(roomSlug string, payload []byte) {}

// NewServices 创建所有 Service 实例
func NewServices(opts Options) *Services {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = noopPublisher{}
	}

	moderation := NewModerationService(opts.Repos, opts.Cache, opts.Mail)
	room := NewRoomService(opts.Repos, opts.Cache)
	reaction := NewReactionService(opts.Repos, opts.Cache, room, publisher)
	presence := NewPresenceService(opts.Repos, room, opts.PresenceWindow)
	message := NewMessageService(opts.Repos, opts.Cache, room, moderation, reaction, presence, publisher, opts.StaticFilePath)
	auth := NewAuthService(opts.Repos, opts.Cache, moderation, opts.RefreshTokenTTL)

	return &Services{
		Auth:       auth,
		User:       NewUserService(opts.Repos),
		Room:       room,
		Message:    message,
		Reaction:   reaction,
		Presence:   presence,
		Moderation: moderation,
	}
}
