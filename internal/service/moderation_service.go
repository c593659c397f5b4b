package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/infrastructure/email"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/constants"
	"huoban_chat_server/pkg/errorx"

	"go.uber.org/zap"
)

// moderationService 封禁管理服务实现
type moderationService struct {
	repos *repository.Repositories
	cache redis.AsyncCacheService
	mail  email.Sender
}

// NewModerationService 创建封禁管理服务
func NewModerationService(repos *repository.Repositories, cache redis.AsyncCacheService, mail email.Sender) ModerationService {
	return &moderationService{repos: repos, cache: cache, mail: mail}
}

// ActiveBlock 查询用户当前生效的封禁记录，未封禁返回 nil
// 记录按创建时间倒序，取第一条在 now 时刻仍生效的
func (s *moderationService) ActiveBlock(userUuid string, now time.Time) (*model.UserBlock, error) {
	blocks, err := s.repos.Block.FindActiveByUser(userUuid)
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		if blocks[i].IsCurrentlyBlocked(now) {
			return &blocks[i], nil
		}
	}
	return nil, nil
}

// BlockUser 封禁用户
func (s *moderationService) BlockUser(ctx context.Context, adminUuid, targetUuid string, req *request.BlockUserRequest) (*respond.BlockRespond, error) {
	target, err := s.repos.User.FindByUuid(targetUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	if target.IsAdmin == 1 {
		return nil, errorx.New(errorx.CodeForbidden, "管理员不可被封禁")
	}

	block := &model.UserBlock{
		UserUuid:  targetUuid,
		BlockedBy: adminUuid,
		BlockType: req.BlockType,
		Reason:    req.Reason,
		IsActive:  true,
	}
	if req.BlockType == constants.BLOCK_TYPE_TEMPORARY {
		if req.DurationDays < 1 {
			return nil, errorx.New(errorx.CodeInvalidParam, "临时封禁必须指定天数")
		}
		block.BlockedUntil = sql.NullTime{
			Time:  time.Now().AddDate(0, 0, req.DurationDays),
			Valid: true,
		}
	}

	// 旧记录全部停用后再落新记录，保证生效记录唯一
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Block.DeactivateByUser(targetUuid); err != nil {
			return err
		}
		return tx.Block.Create(block)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user blocked",
		zap.String("user", targetUuid),
		zap.String("by", adminUuid),
		zap.String("type", req.BlockType))
	s.notify(target, block)

	return s.toRespond(block, target.Username), nil
}

// UnblockUser 解封用户，未封禁时幂等成功
func (s *moderationService) UnblockUser(ctx context.Context, adminUuid, targetUuid string) error {
	target, err := s.repos.User.FindByUuid(targetUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return err
	}
	count, err := s.repos.Block.DeactivateByUser(targetUuid)
	if err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("user unblocked", zap.String("user", targetUuid), zap.String("by", adminUuid))
		if target.Email != "" {
			to := target.Email
			s.cache.SubmitTask(func() {
				_ = s.mail.Send(to, "账号已解封", "您的账号封禁已解除，现在可以正常使用。")
			})
		}
	}
	return nil
}

// SweepExpired 停用全部已过期的临时封禁
func (s *moderationService) SweepExpired(ctx context.Context) (*respond.SweepRespond, error) {
	count, err := s.repos.Block.DeactivateExpired(time.Now())
	if err != nil {
		return nil, err
	}
	if count > 0 {
		zap.L().Info("expired blocks swept", zap.Int64("count", count))
	}
	return &respond.SweepRespond{Deactivated: count}, nil
}

// ListBlocked 查询当前封禁中的用户列表
func (s *moderationService) ListBlocked(ctx context.Context) ([]respond.BlockRespond, error) {
	blocks, err := s.repos.Block.FindAllActive()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	uuids := make([]string, 0, len(blocks))
	for i := range blocks {
		if blocks[i].IsCurrentlyBlocked(now) {
			uuids = append(uuids, blocks[i].UserUuid)
		}
	}
	users, err := s.repos.User.FindByUuids(uuids)
	if err != nil {
		return nil, err
	}
	names := usernamesByUuid(users)

	result := make([]respond.BlockRespond, 0, len(uuids))
	for i := range blocks {
		if blocks[i].IsCurrentlyBlocked(now) {
			result = append(result, *s.toRespond(&blocks[i], names[blocks[i].UserUuid]))
		}
	}
	return result, nil
}

// notify 封禁通知邮件，异步发送不阻断业务
func (s *moderationService) notify(target *model.UserInfo, block *model.UserBlock) {
	if target.Email == "" {
		return
	}
	to := target.Email
	body := fmt.Sprintf("您的账号已被封禁。\n原因: %s\n", block.Reason)
	if block.BlockedUntil.Valid {
		body += fmt.Sprintf("解封时间: %s\n", block.BlockedUntil.Time.Format(timeLayout))
	} else {
		body += "类型: 永久封禁\n"
	}
	s.cache.SubmitTask(func() {
		_ = s.mail.Send(to, "账号封禁通知", body)
	})
}

// toRespond 组装封禁记录响应
func (s *moderationService) toRespond(block *model.UserBlock, username string) *respond.BlockRespond {
	resp := &respond.BlockRespond{
		UserUuid:  block.UserUuid,
		Username:  username,
		BlockedBy: block.BlockedBy,
		BlockType: block.BlockType,
		Reason:    block.Reason,
		BlockedAt: block.CreatedAt.Format(timeLayout),
	}
	if block.BlockedUntil.Valid {
		resp.BlockedUntil = block.BlockedUntil.Time.Format(timeLayout)
	}
	return resp
}
