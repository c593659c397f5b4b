// Package handler 提供 HTTP 请求处理器
// 本文件处理消息表情回应的 API 请求
package handler

import (
	"strconv"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"
	"huoban_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// ReactionHandler 表情回应请求处理器
type ReactionHandler struct {
	svc service.ReactionService
}

// NewReactionHandler 创建表情回应处理器
func NewReactionHandler(svc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

// Toggle 切换表情回应
// POST /api/rooms/:slug/messages/:id/reactions
func (h *ReactionHandler) Toggle(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "消息 ID 无效"))
		return
	}
	var req request.ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	resp, err := h.svc.ToggleReaction(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("slug"), uint(messageID), req.Emoji)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
