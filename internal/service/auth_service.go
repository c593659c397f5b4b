package service

import (
	"context"
	"time"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/dto/respond"
	"huoban_chat_server/internal/model"
	"huoban_chat_server/pkg/errorx"
	"huoban_chat_server/pkg/util/jwt"
	"huoban_chat_server/pkg/util/random"

	"go.uber.org/zap"
)

// refreshTokenKeyPrefix Refresh Token 的缓存键前缀
// 每个用户只保留最新一个 tokenID，旧 Refresh Token 自动失效
const refreshTokenKeyPrefix = "refresh_token_"

// authService 认证服务实现
type authService struct {
	repos           *repository.Repositories
	cache           redis.AsyncCacheService
	moderation      ModerationService
	refreshTokenTTL time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(repos *repository.Repositories, cache redis.AsyncCacheService, moderation ModerationService, refreshTokenTTL time.Duration) AuthService {
	return &authService{
		repos:           repos,
		cache:           cache,
		moderation:      moderation,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register 注册新用户
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*respond.RegisterRespond, error) {
	exists, err := s.repos.User.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已存在")
	}

	user := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(13),
		Username:    req.Username,
		Email:       req.Email,
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(user); err != nil {
		return nil, err
	}
	zap.L().Info("user registered", zap.String("uuid", user.Uuid), zap.String("username", user.Username))

	return &respond.RegisterRespond{Uuid: user.Uuid, Username: user.Username}, nil
}

// Login 密码登录
// 凭证通过后做封禁门禁，封禁中的用户带原因拒绝
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}
	if user.Status != 0 {
		return nil, errorx.New(errorx.CodeUserBlocked, "账号已被禁用")
	}
	if err := s.checkBlocked(user.Uuid); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	zap.L().Info("user login", zap.String("uuid", user.Uuid))

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
		CreatedAt:    user.CreatedAt.Format(timeLayout),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 旋转刷新令牌对
// 只认 Redis 中登记的最新 tokenID，老令牌换发即作废
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "令牌无效")
	}
	if claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	stored, err := s.cache.GetOrError(ctx, refreshTokenKeyPrefix+claims.UserID)
	if err != nil || stored != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌已失效，请重新登录")
	}

	user, err := s.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	if err := s.checkBlocked(user.Uuid); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout 登出，吊销 Refresh Token
func (s *authService) Logout(ctx context.Context, userUuid string) error {
	if err := s.cache.Delete(ctx, refreshTokenKeyPrefix+userUuid); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "登出失败")
	}
	return nil
}

// checkBlocked 封禁门禁
func (s *authService) checkBlocked(userUuid string) error {
	block, err := s.moderation.ActiveBlock(userUuid, time.Now())
	if err != nil {
		return err
	}
	if block != nil {
		return errorx.Newf(errorx.CodeUserBlocked, "账号已被封禁: %s", block.Reason)
	}
	return nil
}

// issueTokens 签发令牌对并登记 Refresh tokenID
func (s *authService) issueTokens(ctx context.Context, user *model.UserInfo) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(user.Uuid, user.IsAdmin == 1)
	if err != nil {
		return "", "", errorx.Wrap(err, errorx.CodeServerBusy, "签发令牌失败")
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		return "", "", errorx.Wrap(err, errorx.CodeServerBusy, "签发令牌失败")
	}
	if err := s.cache.Set(ctx, refreshTokenKeyPrefix+user.Uuid, tokenID, s.refreshTokenTTL); err != nil {
		return "", "", errorx.Wrap(err, errorx.CodeCacheError, "登记令牌失败")
	}
	return accessToken, refreshToken, nil
}
