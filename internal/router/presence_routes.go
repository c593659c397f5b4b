package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerPresenceRoutes 注册在线状态路由
func (rt *Router) registerPresenceRoutes(r *gin.Engine) {
	presenceGroup := r.Group("/api/rooms/:slug")
	presenceGroup.Use(middleware.JWTAuth())
	{
		presenceGroup.POST("/heartbeat", rt.handlers.Presence.Heartbeat)
		presenceGroup.POST("/offline", rt.handlers.Presence.Offline)
		presenceGroup.GET("/online", rt.handlers.Presence.Online)
	}
}
