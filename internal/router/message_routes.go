package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerMessageRoutes 注册消息和表情回应路由
func (rt *Router) registerMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/api/rooms/:slug")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/messages", rt.handlers.Message.Send)
		messageGroup.GET("/messages", rt.handlers.Message.Poll)
		messageGroup.GET("/history", rt.handlers.Message.History)
		messageGroup.POST("/messages/:id/reactions", rt.handlers.Reaction.Toggle)
	}
}
