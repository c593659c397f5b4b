package router

import (
	"huoban_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// registerAuthRoutes 注册认证相关路由
func (rt *Router) registerAuthRoutes(r *gin.Engine) {
	// 公开接口（无需认证）
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)
	}

	// 需要认证的接口
	authGroup.POST("/logout", middleware.JWTAuth(), rt.handlers.Auth.Logout)
}
