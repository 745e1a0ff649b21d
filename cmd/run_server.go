package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/note-share-sync-service/global"
	internalApp "github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/routers"
	"github.com/haierkeys/note-share-sync-service/internal/task"
	"github.com/haierkeys/note-share-sync-service/pkg/debounce"
	"github.com/haierkeys/note-share-sync-service/pkg/logger"
	"github.com/haierkeys/note-share-sync-service/pkg/safe_close"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	logger     *zap.Logger            // Logger // 日志对象
	config     *global.AppConfig // App configuration // 应用配置
	db         *gorm.DB               // Database connection // 数据库连接
	httpServer *http.Server
	sc         *safe_close.SafeClose
	app        *internalApp.App // App Container
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := global.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 确定运行模式
	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}

	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = ":" + runEnv.port
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	// 初始化日志器（使用注入的配置）
	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	global.Logger = s.logger

	// 初始化存储目录（使用注入的配置）
	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	// 初始化数据库（使用注入的配置）
	db, err := dao.NewDBEngine(appConfig.Database, runMode)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db
	global.DBEngine = db

	// 初始化内容存储驱动
	contentStorage, err := storage.NewClient(&appConfig.Storage,
		storage.WithDB(db),
		storage.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("initContentStorage: %w", err)
	}
	global.ContentStorage = contentStorage

	// 初始化 App Container（直接使用 AppConfig）
	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	// 初始化分享对账的防抖触发器
	initReconcileTrigger(s, appConfig)

	// 启动调度器
	initScheduler(s, appConfig)

	s.logger.Warn(fmt.Sprintf("%s starting", global.Name))
	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", appConfig.Server.HttpPort))
		s.httpServer = &http.Server{
			Addr:           appConfig.Server.HttpPort,
			Handler:        routers.NewRouter(s.app),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			errChan := make(chan error, 1)
			go func() {
				errChan <- s.httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				s.logger.Error("api service err", zap.Error(err))
				s.sc.SendCloseSignal(err)
			case <-closeSignal:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// 停止 HTTP 服务器
				if err := s.httpServer.Shutdown(ctx); err != nil {
					s.logger.Error("api service shutdown error", zap.Error(err))
				}
			}
		})
	}

	return s, nil
}

// initReconcileTrigger 将防抖触发器接到对账服务上，并注册优雅关闭
func initReconcileTrigger(s *Server, cfg *global.AppConfig) {
	trigger := debounce.New(&debounce.Config{
		Quiet:   time.Duration(cfg.App.ReconcileQuiet) * time.Second,
		MaxWait: time.Duration(cfg.App.ReconcileMaxWait) * time.Second,
	}, func(ctx context.Context) {
		if err := s.app.Service.Reconcile.Run(ctx); err != nil {
			s.logger.Error("share reconcile run err", zap.Error(err))
		}
	}, s.logger)

	global.ReconcileTrigger = trigger

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		trigger.Stop()
	})
}

func initScheduler(s *Server, cfg *global.AppConfig) {
	// 创建任务管理器
	manager := task.NewManager(s.logger, s.sc)

	// 注册所有任务（业务层控制）
	manager.RegisterTasks(s.app.Service,
		time.Duration(cfg.App.ReconcileInterval)*time.Second,
		time.Duration(cfg.App.TotalSizeInterval)*time.Second,
	)

	// 启动任务调度器
	manager.Start()
}

// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, cfg *global.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg

	return nil
}

// initStorageWithConfig 初始化存储目录（使用注入的配置）
func initStorageWithConfig(cfg *global.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Log.File),
	}
	if cfg.Database.Type == "sqlite" {
		dirs = append(dirs, filepath.Dir(cfg.Database.Path))
	}
	if cfg.Storage.Type == storage.LOCAL {
		dirs = append(dirs, cfg.Storage.SavePath)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *global.AppConfig {
	return s.config
}
