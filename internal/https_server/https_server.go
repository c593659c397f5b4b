// Package https_server 提供 HTTP 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件、静态资源和路由
package https_server

import (
	"huoban_chat_server/internal/config"
	"huoban_chat_server/internal/handler"
	"huoban_chat_server/internal/infrastructure/logger"
	"huoban_chat_server/internal/infrastructure/metrics"
	"huoban_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 初始化 HTTP 服务器并返回 Gin 引擎实例
// 配置顺序：日志和恢复中间件、指标采集、CORS、静态资源、业务路由
func Init(handlers *handler.Handlers) *gin.Engine {
	// 空白引擎，不使用 gin.Default()，中间件完全自控
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(metrics.GinMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS 重定向中间件（由 Nginx 终结 SSL 时保持注释）
	// engine.Use(middleware.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	// 附件静态目录，消息里的 file_url 指向这里
	engine.Static("/static/message", config.GetConfig().StaticFilePath+"/message")

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
