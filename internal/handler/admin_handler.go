// Package handler 提供 HTTP 请求处理器
// 本文件处理管理端的 API 请求，路由层挂 AdminOnly 中间件
package handler

import (
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端请求处理器
type AdminHandler struct {
	users      service.UserService
	moderation service.ModerationService
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(users service.UserService, moderation service.ModerationService) *AdminHandler {
	return &AdminHandler{users: users, moderation: moderation}
}

// ListUsers 全部用户列表
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	resp, err := h.users.GetUserList(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// Block 封禁用户
// POST /api/admin/users/:uuid/block
func (h *AdminHandler) Block(c *gin.Context) {
	var req request.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.moderation.BlockUser(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("uuid"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// Unblock 解封用户
// POST /api/admin/users/:uuid/unblock
func (h *AdminHandler) Unblock(c *gin.Context) {
	err := h.moderation.UnblockUser(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListBlocked 封禁中的用户列表
// GET /api/admin/blocks
func (h *AdminHandler) ListBlocked(c *gin.Context) {
	resp, err := h.moderation.ListBlocked(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// SweepBlocks 清扫过期的临时封禁
// POST /api/admin/blocks/sweep
func (h *AdminHandler) SweepBlocks(c *gin.Context) {
	resp, err := h.moderation.SweepExpired(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
