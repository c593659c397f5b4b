package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerRoomRoutes 注册房间相关路由
func (rt *Router) registerRoomRoutes(r *gin.Engine) {
	roomGroup := r.Group("/api/rooms")
	roomGroup.Use(middleware.JWTAuth())
	{
		roomGroup.POST("", rt.handlers.Room.Create)
		roomGroup.GET("/public", rt.handlers.Room.ListPublic)
		roomGroup.GET("/private", rt.handlers.Room.ListPrivate)
		roomGroup.POST("/join", rt.handlers.Room.Join)
		roomGroup.POST("/:slug/leave", rt.handlers.Room.Leave)
		roomGroup.DELETE("/:slug", rt.handlers.Room.Delete)
		roomGroup.PUT("/:slug/type", rt.handlers.Room.SetType)
	}
}
