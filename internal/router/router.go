// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"huoban_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerAuthRoutes(r)     // 认证路由
	rt.registerRoomRoutes(r)     // 房间路由
	rt.registerMessageRoutes(r)  // 消息和表情回应路由
	rt.registerPresenceRoutes(r) // 在线状态路由
	rt.registerAdminRoutes(r)    // 管理端路由
	rt.registerWsRoutes(r)       // WebSocket 路由

	// Prometheus 拉取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
