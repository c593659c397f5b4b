// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"strings"

	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	svc service.MessageService
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Send 发送消息
// POST /api/rooms/:slug/messages
// 纯文本走 JSON 请求体；带附件走 multipart 表单，content 字段 + file 文件
func (h *MessageHandler) Send(c *gin.Context) {
	userUuid := c.GetString(middleware.CtxUserID)
	slug := c.Param("slug")

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		content := c.PostForm("content")
		file, err := c.FormFile("file")
		if err != nil {
			file = nil
		}
		resp, err := h.svc.SendMessage(c.Request.Context(), userUuid, slug, content, file)
		if err != nil {
			HandleError(c, err)
			return
		}
		HandleSuccess(c, resp)
		return
	}

	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.SendMessage(c.Request.Context(), userUuid, slug, req.Content, nil)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// Poll 增量拉取消息
// GET /api/rooms/:slug/messages?since=&limit=
func (h *MessageHandler) Poll(c *gin.Context) {
	var req request.GetMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.GetMessagesSince(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("slug"), req.Since, req.Limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// History 进入房间时的初始视图
// GET /api/rooms/:slug/history
func (h *MessageHandler) History(c *gin.Context) {
	resp, err := h.svc.GetRoomHistory(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
