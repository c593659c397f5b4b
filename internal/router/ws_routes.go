package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerWsRoutes 注册 WebSocket 路由
func (rt *Router) registerWsRoutes(r *gin.Engine) {
	r.GET("/ws", middleware.JWTAuth(), rt.handlers.Ws.Connect)
}
