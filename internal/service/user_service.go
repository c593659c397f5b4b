package service

import (
	"context"

	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/dto/respond"
)

// userService 用户服务实现（管理端）
type userService struct {
	repos *repository.Repositories
}

// NewUserService 创建用户服务
func NewUserService(repos *repository.Repositories) UserService {
	return &userService{repos: repos}
}

// GetUserList 查询全部用户
func (s *userService) GetUserList(ctx context.Context) ([]respond.UserInfoRespond, error) {
	users, err := s.repos.User.FindAll()
	if err != nil {
		return nil, err
	}
	result := make([]respond.UserInfoRespond, 0, len(users))
	for i := range users {
		result = append(result, respond.UserInfoRespond{
			Uuid:      users[i].Uuid,
			Username:  users[i].Username,
			Email:     users[i].Email,
			IsAdmin:   users[i].IsAdmin,
			Status:    users[i].Status,
			CreatedAt: users[i].CreatedAt.Format(timeLayout),
		})
	}
	return result, nil
}
