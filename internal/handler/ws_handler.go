// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 接入：鉴权、升级、在线状态挂接
package handler

import (
	"context"
	"net/http"

	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"
	"huoban_chat_server/internal/service/chat"
	"huoban_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader WebSocket 协议升级器
// 跨域控制已由 CORS 中间件统一处理
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler WebSocket 接入处理器
type WsHandler struct {
	hub      *chat.Hub
	room     service.RoomService
	presence service.PresenceService
}

// NewWsHandler 创建 WebSocket 处理器
func NewWsHandler(hub *chat.Hub, room service.RoomService, presence service.PresenceService) *WsHandler {
	return &WsHandler{hub: hub, room: room, presence: presence}
}

// Connect 建立房间推送连接
// GET /ws?room=<slug>
// 连接建立即在线，断开立即离线，不等存活窗口过期
func (h *WsHandler) Connect(c *gin.Context) {
	userUuid := c.GetString(middleware.CtxUserID)
	slug := c.Query("room")
	if slug == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "缺少 room 参数"))
		return
	}

	// 升级前完成鉴权，失败时还能走统一错误响应
	if _, err := h.room.AuthorizeAccess(userUuid, slug); err != nil {
		HandleError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.String("room", slug), zap.Error(err))
		return
	}

	onActive := func() {
		if err := h.presence.Heartbeat(context.Background(), userUuid, slug); err != nil {
			zap.L().Warn("ws heartbeat failed", zap.String("user", userUuid), zap.Error(err))
		}
	}
	onClose := func() {
		if err := h.presence.MarkOffline(context.Background(), userUuid, slug); err != nil {
			zap.L().Warn("ws mark offline failed", zap.String("user", userUuid), zap.Error(err))
		}
	}

	client := chat.NewClient(h.hub, conn, slug, userUuid, onActive, onClose)
	onActive()
	client.Start()
}
