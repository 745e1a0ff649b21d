// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"

	"github.com/haierkeys/note-share-sync-service/global"
	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	config *global.AppConfig
	logger *zap.Logger

	DB  *gorm.DB
	Dao *dao.Dao

	// Service 层
	Service *service.Service
}

// NewApp 创建应用容器实例并完成依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *global.AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	d := dao.New(db)

	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			MaxItemSize:  cfg.User.MaxItemSize,
			MaxTotalSize: cfg.User.MaxTotalSize,
			CanShare:     cfg.User.CanShare,
		},
		App: service.AppServiceConfig{
			DefaultPageSize: cfg.App.DefaultPageSize,
			MaxPageSize:     cfg.App.MaxPageSize,
			ChangeBatchSize: cfg.App.ChangeBatchSize,
		},
	}

	return &App{
		config:  cfg,
		logger:  logger,
		DB:      db,
		Dao:     d,
		Service: service.New(d, logger, svcConfig),
	}, nil
}

// Config 返回应用配置
func (a *App) Config() *global.AppConfig {
	return a.config
}

// Logger 返回日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}
