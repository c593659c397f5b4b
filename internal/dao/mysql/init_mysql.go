// Package mysql 提供数据访问层的初始化和全局数据库实例管理
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package mysql

import (
	"fmt"

	"huoban_chat_server/internal/config"
	"huoban_chat_server/internal/dao/mysql/repository"
	"huoban_chat_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 连接失败视为致命错误，直接退出
func Init() *repository.Repositories {
	conf := config.GetConfig()

	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError 让唯一索引冲突统一翻译成 gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := AutoMigrate(db); err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}

// AutoMigrate 自动迁移全部表结构
// 如果表不存在则创建，如果字段变更则更新结构；不会删除已有字段或数据
// 单独导出供测试用内存库复用
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserInfo{},        // 用户信息表
		&model.UserBlock{},       // 封禁记录表
		&model.ChatRoom{},        // 房间表
		&model.RoomMember{},      // 私密房间成员表
		&model.Message{},         // 消息表
		&model.MessageReaction{}, // 消息回应表
		&model.UserPresence{},    // 在线状态表
	)
}
