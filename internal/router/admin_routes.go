package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerAdminRoutes 注册管理端路由，整组要求管理员身份
func (rt *Router) registerAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.JWTAuth(), middleware.AdminOnly())
	{
		adminGroup.GET("/users", rt.handlers.Admin.ListUsers)
		adminGroup.POST("/users/:uuid/block", rt.handlers.Admin.Block)
		adminGroup.POST("/users/:uuid/unblock", rt.handlers.Admin.Unblock)
		adminGroup.GET("/blocks", rt.handlers.Admin.ListBlocked)
		adminGroup.POST("/blocks/sweep", rt.handlers.Admin.SweepBlocks)
	}
}
