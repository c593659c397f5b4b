package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/infrastructure/metrics"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"

	"go.uber.org/zap"
)

// reactionEntry 单个表情的聚合缓存结构，与查看者无关
// UserReacted 标志在读取时由 Uuids 推导
type reactionEntry struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
	Uuids []string `json:"uuids"`
}

// reactionService 消息表情回应服务实现
type reactionService struct {
	repos     *repository.Repositories
	cache     redis.AsyncCacheService
	room      RoomService
	publisher MessagePublisher
}

// NewReactionService 创建表情回应服务
func NewReactionService(repos *repository.Repositories, cache redis.AsyncCacheService, room RoomService, publisher MessagePublisher) ReactionService {
	return &reactionService{repos: repos, cache: cache, room: room, publisher: publisher}
}

// summaryCacheKey 消息回应聚合的缓存键
func summaryCacheKey(messageID uint) string {
	return fmt.Sprintf("reaction_summary_%d", messageID)
}

// ToggleReaction 切换表情回应
func (s *reactionService) ToggleReaction(ctx context.Context, userUuid, slug string, messageID uint, emoji string) (*respond.ToggleReactionRespond, error) {
	if !model.IsValidEmoji(emoji) {
		return nil, errorx.New(errorx.CodeInvalidParam, "不支持的表情")
	}
	room, err := s.room.AuthorizeAccess(userUuid, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.Message.FindByIDInRoom(room.ID, messageID); err != nil {
		return nil, err
	}

	// 唯一索引充当并发仲裁：插入冲突说明另一个请求刚加上，本次按取消处理
	added := false
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		existing, err := tx.Reaction.Find(messageID, userUuid, emoji)
		switch {
		case err == nil:
			return tx.Reaction.Delete(existing.ID)
		case errorx.IsNotFound(err):
			createErr := tx.Reaction.Create(&model.MessageReaction{
				MessageID: messageID,
				UserUuid:  userUuid,
				Emoji:     emoji,
			})
			if createErr == nil {
				added = true
				return nil
			}
			if errorx.IsConflict(createErr) {
				racing, findErr := tx.Reaction.Find(messageID, userUuid, emoji)
				if findErr != nil {
					return findErr
				}
				return tx.Reaction.Delete(racing.ID)
			}
			return createErr
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	action := "removed"
	if added {
		action = "added"
	}
	metrics.ReactionsTotal.WithLabelValues(action).Inc()
	zap.L().Debug("reaction toggled",
		zap.Uint("message", messageID),
		zap.String("emoji", emoji),
		zap.String("action", action))

	// 聚合已变化，丢弃缓存后重算
	if err := s.cache.Delete(ctx, summaryCacheKey(messageID)); err != nil {
		zap.L().Warn("drop reaction cache failed", zap.Error(err))
	}
	summary, err := s.Summaries(ctx, []uint{messageID}, userUuid)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(slug, messageID, summary[messageID])
	return &respond.ToggleReactionRespond{Added: added, Reactions: summary[messageID]}, nil
}

// Summaries 批量查询消息的表情聚合，带查看者标志
// 聚合结果按消息缓存，TTL 兜底缓存与库的短暂不一致
func (s *reactionService) Summaries(ctx context.Context, messageIDs []uint, viewerUuid string) (map[uint]map[string]respond.ReactionSummaryRespond, error) {
	result := make(map[uint]map[string]respond.ReactionSummaryRespond, len(messageIDs))
	for _, id := range messageIDs {
		entries, err := s.loadEntries(ctx, id)
		if err != nil {
			return nil, err
		}
		summary := make(map[string]respond.ReactionSummaryRespond, len(entries))
		for emoji, entry := range entries {
			reacted := false
			for _, uuid := range entry.Uuids {
				if uuid == viewerUuid {
					reacted = true
					break
				}
			}
			summary[emoji] = respond.ReactionSummaryRespond{
				Count:       entry.Count,
				Users:       entry.Users,
				UserReacted: reacted,
			}
		}
		result[id] = summary
	}
	return result, nil
}

// loadEntries 读取单条消息的聚合，缓存未命中时回源并异步回填
func (s *reactionService) loadEntries(ctx context.Context, messageID uint) (map[string]reactionEntry, error) {
	key := summaryCacheKey(messageID)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var entries map[string]reactionEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
	}

	reactions, err := s.repos.Reaction.FindByMessage(messageID)
	if err != nil {
		return nil, err
	}
	entries, err := s.buildEntries(reactions)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		payload := string(data)
		s.cache.SubmitTask(func() {
			taskCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := s.cache.Set(taskCtx, key, payload, constants.REDIS_TIMEOUT); err != nil {
				zap.L().Warn("cache reaction summary failed", zap.Error(err))
			}
		})
	}
	return entries, nil
}

// buildEntries 从回应行构建聚合，按创建顺序保持用户列表有序
func (s *reactionService) buildEntries(reactions []model.MessageReaction) (map[string]reactionEntry, error) {
	uuids := make([]string, 0, len(reactions))
	for i := range reactions {
		uuids = append(uuids, reactions[i].UserUuid)
	}
	users, err := s.repos.User.FindByUuids(uuids)
	if err != nil {
		return nil, err
	}
	names := usernamesByUuid(users)

	entries := make(map[string]reactionEntry)
	for i := range reactions {
		entry := entries[reactions[i].Emoji]
		entry.Count++
		entry.Users = append(entry.Users, names[reactions[i].UserUuid])
		entry.Uuids = append(entry.Uuids, reactions[i].UserUuid)
		entries[reactions[i].Emoji] = entry
	}
	return entries, nil
}

// publishUpdate 向房间订阅者推送回应变化
func (s *reactionService) publishUpdate(slug string, messageID uint, reactions map[string]respond.ReactionSummaryRespond) {
	event := PushEvent{
		Type: "reaction",
		Room: slug,
		Data: map[string]any{
			"message_id": messageID,
			"reactions":  reactions,
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.publisher.Publish(slug, payload)
}
