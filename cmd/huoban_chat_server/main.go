package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huoban_chat_server/internal/config"
	dao "huoban_chat_server/internal/dao/mysql"
	myredis "huoban_chat_server/internal/dao/redis"
	"huoban_chat_server/internal/handler"
	"huoban_chat_server/internal/https_server"
	"huoban_chat_server/internal/infrastructure/email"
	"huoban_chat_server/internal/infrastructure/logger"
	"huoban_chat_server/internal/service"
	"huoban_chat_server/internal/service/chat"
	"huoban_chat_server/pkg/util/jwt"
	"huoban_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化校验错误翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT 和雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 7. 初始化推送层
	// 单机走进程内 channel，多实例走 Kafka
	var broker chat.RoomBroker
	if conf.KafkaConfig.BroadcastMode == "kafka" {
		broker = chat.NewKafkaBroker(conf.KafkaConfig, fmt.Sprintf("%d", conf.SnowflakeConfig.MachineID))
	} else {
		broker = chat.NewChannelBroker()
	}
	hub := chat.NewHub(broker)
	hub.Start()
	zap.L().Info("推送层初始化成功", zap.String("mode", conf.KafkaConfig.BroadcastMode))

	// 8. 初始化 Service 层（依赖注入）
	services := service.NewServices(service.Options{
		Repos:           repos,
		Cache:           myredis.GetCacheService(),
		Mail:            email.NewSender(conf.EmailConfig),
		Publisher:       hub,
		StaticFilePath:  conf.StaticSrcConfig.StaticFilePath,
		PresenceWindow:  conf.PresenceConfig.StaleWindow(),
		RefreshTokenTTL: time.Duration(conf.JWTConfig.RefreshTokenExpiry) * time.Hour,
	})
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(services, hub)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务器启动成功", zap.Int("port", conf.MainConfig.Port))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	if err := hub.Close(); err != nil {
		zap.L().Error("关闭推送层失败", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
}
