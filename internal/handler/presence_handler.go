// Package handler 提供 HTTP 请求处理器
// 本文件处理在线状态相关的 API 请求
package handler

import (
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PresenceHandler 在线状态请求处理器
type PresenceHandler struct {
	svc service.PresenceService
}

// NewPresenceHandler 创建在线状态处理器
func NewPresenceHandler(svc service.PresenceService) *PresenceHandler {
	return &PresenceHandler{svc: svc}
}

// Heartbeat 刷新活跃时间
// POST /api/rooms/:slug/heartbeat
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	err := h.svc.Heartbeat(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Offline 主动下线
// POST /api/rooms/:slug/offline
// 轮询客户端离开页面时调用，不等存活窗口过期
func (h *PresenceHandler) Offline(c *gin.Context) {
	err := h.svc.MarkOffline(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Online 房间在线用户列表
// GET /api/rooms/:slug/online
func (h *PresenceHandler) Online(c *gin.Context) {
	resp, err := h.svc.GetOnlineUsers(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
