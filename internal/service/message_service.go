package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/infrastructure/metrics"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"
	"huoban_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

// messageService 消息服务实现
type messageService struct {
	repos      *repository.Repositories
	cache      redis.AsyncCacheService
	room       RoomService
	moderation ModerationService
	reaction   ReactionService
	presence   PresenceService
	publisher  MessagePublisher
	staticPath string
}

// NewMessageService 创建消息服务
func NewMessageService(
	repos *repository.Repositories,
	cache redis.AsyncCacheService,
	room RoomService,
	moderation ModerationService,
	reaction ReactionService,
	presence PresenceService,
	publisher MessagePublisher,
	staticPath string,
) MessageService {
	return &messageService{
		repos:      repos,
		cache:      cache,
		room:       room,
		moderation: moderation,
		reaction:   reaction,
		presence:   presence,
		publisher:  publisher,
		staticPath: staticPath,
	}
}

// SendMessage 向房间发送消息
// 写路径顺序固定：封禁门禁、访问校验、附件落盘、消息落库、会后推送
func (s *messageService) SendMessage(ctx context.Context, userUuid, slug, content string, file *multipart.FileHeader) (*respond.SendMessageRespond, error) {
	block, err := s.moderation.ActiveBlock(userUuid, time.Now())
	if err != nil {
		return nil, err
	}
	if block != nil {
		return nil, errorx.Newf(errorx.CodeUserBlocked, "账号已被封禁: %s", block.Reason)
	}

	room, err := s.room.AuthorizeAccess(userUuid, slug)
	if err != nil {
		return nil, err
	}
	sender, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" && file == nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息不能为空")
	}

	message := &model.Message{
		Uuid:       snowflake.GenerateID(),
		RoomID:     room.ID,
		SenderUuid: userUuid,
		SenderName: sender.Username,
		Content:    content,
		Type:       constants.MESSAGE_TYPE_TEXT,
	}
	if file != nil {
		if err := s.saveAttachment(message, file); err != nil {
			return nil, err
		}
		if message.Content == "" {
			message.Content = fmt.Sprintf("Shared a %s", message.Type)
		}
	}

	if err := s.repos.Message.Create(message); err != nil {
		return nil, err
	}
	metrics.MessagesTotal.Inc()

	// 发消息视为一次活跃
	if err := s.repos.Presence.Upsert(room.ID, userUuid, time.Now()); err != nil {
		zap.L().Warn("refresh presence failed", zap.String("user", userUuid), zap.Error(err))
	}

	s.publishMessage(slug, message)
	zap.L().Debug("message sent",
		zap.String("room", slug),
		zap.String("sender", userUuid),
		zap.String("type", message.Type))

	return &respond.SendMessageRespond{Id: message.ID, Uuid: fmt.Sprintf("%d", message.Uuid)}, nil
}

// GetMessagesSince 增量拉取消息
// since 为客户端已见的最大消息 ID；limit 缺省 50，上限 200
func (s *messageService) GetMessagesSince(ctx context.Context, userUuid, slug string, since uint, limit int) ([]respond.MessageRespond, error) {
	room, err := s.room.AuthorizeAccess(userUuid, slug)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = constants.MESSAGE_PAGE_SIZE
	}
	if limit > constants.MESSAGE_PAGE_MAX {
		limit = constants.MESSAGE_PAGE_MAX
	}

	messages, err := s.repos.Message.FindSince(room.ID, since, limit)
	if err != nil {
		return nil, err
	}

	// 轮询也是一次活跃
	if err := s.repos.Presence.Upsert(room.ID, userUuid, time.Now()); err != nil {
		zap.L().Warn("refresh presence failed", zap.String("user", userUuid), zap.Error(err))
	}

	return s.toResponds(ctx, messages, userUuid)
}

// GetRoomHistory 进入房间时的初始视图
func (s *messageService) GetRoomHistory(ctx context.Context, userUuid, slug string) (*respond.RoomHistoryRespond, error) {
	room, err := s.room.AuthorizeAccess(userUuid, slug)
	if err != nil {
		return nil, err
	}

	messages, err := s.repos.Message.FindRecent(room.ID, constants.ROOM_HISTORY_SIZE)
	if err != nil {
		return nil, err
	}
	messageResponds, err := s.toResponds(ctx, messages, userUuid)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Presence.Upsert(room.ID, userUuid, time.Now()); err != nil {
		zap.L().Warn("refresh presence failed", zap.String("user", userUuid), zap.Error(err))
	}
	onlineUsers, err := s.presence.GetOnlineUsers(ctx, userUuid, slug)
	if err != nil {
		return nil, err
	}

	return &respond.RoomHistoryRespond{
		Room:        roomToRespond(room, userUuid),
		Messages:    messageResponds,
		OnlineUsers: onlineUsers,
	}, nil
}

// toResponds 批量组装消息响应，附带表情聚合
func (s *messageService) toResponds(ctx context.Context, messages []model.Message, viewerUuid string) ([]respond.MessageRespond, error) {
	ids := make([]uint, 0, len(messages))
	for i := range messages {
		ids = append(ids, messages[i].ID)
	}
	summaries, err := s.reaction.Summaries(ctx, ids, viewerUuid)
	if err != nil {
		return nil, err
	}

	result := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		result = append(result, messageToRespond(&messages[i], summaries[messages[i].ID]))
	}
	return result, nil
}

// saveAttachment 附件落盘并回填消息的附件字段
// Content-Type 以 image/ 开头归类为图片消息，其余为文件消息
func (s *messageService) saveAttachment(message *model.Message, file *multipart.FileHeader) error {
	if file.Size > constants.FILE_MAX_SIZE {
		return errorx.New(errorx.CodeInvalidParam, "附件超过大小限制")
	}

	message.Type = constants.MESSAGE_TYPE_FILE
	if strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		message.Type = constants.MESSAGE_TYPE_IMAGE
	}

	// 存储名用雪花 ID，避免原始文件名冲突和路径穿越
	storedName := snowflake.GenerateIDString() + filepath.Ext(file.Filename)
	dir := filepath.Join(s.staticPath, "message")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "创建附件目录失败")
	}

	src, err := file.Open()
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "读取附件失败")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "保存附件失败")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "保存附件失败")
	}

	message.FileUrl = "/static/message/" + storedName
	message.FileName = file.Filename
	message.FileSize = file.Size
	return nil
}

// publishMessage 向房间订阅者推送新消息
func (s *messageService) publishMessage(slug string, message *model.Message) {
	event := PushEvent{
		Type: "message",
		Room: slug,
		Data: messageToRespond(message, nil),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.publisher.Publish(slug, payload)
}
