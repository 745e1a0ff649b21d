package cmd

import (
	"context"
	"fmt"

	"github.com/haierkeys/note-share-sync-service/global"
	internalApp "github.com/haierkeys/note-share-sync-service/internal/app"
	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/service"
	"github.com/haierkeys/note-share-sync-service/pkg/logger"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type migrateFlags struct {
	config    string // Configuration file path // 配置文件路径
	target    string // Target storage type // 目标存储类型
	maxSize   int64  // Max content size to migrate // 迁移条目的大小上限
	batchSize int    // Items per batch // 单批条目数
	maxItems  int    // Max items per invocation // 单次迁移条目上限
	workers   int    // Concurrent storage writers // 并发写入协程数
}

func init() {
	migrateEnv := new(migrateFlags)

	var migrateCommand = &cobra.Command{
		Use:   "migrate -t storage_type [-c config_file]",
		Short: "Migrate item content to another storage driver",
		Run: func(cmd *cobra.Command, args []string) {
			if len(migrateEnv.config) <= 0 {
				migrateEnv.config = "config/config.yaml"
			}

			if err := runMigrate(migrateEnv); err != nil {
				bootstrapLogger.Error("content migration failed", zap.Error(err))
			}
		},
	}

	rootCmd.AddCommand(migrateCommand)
	fs := migrateCommand.Flags()
	fs.StringVarP(&migrateEnv.config, "config", "c", "", "config file")
	fs.StringVarP(&migrateEnv.target, "target", "t", "", "target storage type (database/localfs/s3/webdav)")
	fs.Int64Var(&migrateEnv.maxSize, "max-size", 0, "skip items larger than this many bytes, 0 for no limit")
	fs.IntVar(&migrateEnv.batchSize, "batch", 100, "items per batch")
	fs.IntVar(&migrateEnv.maxItems, "max-items", 0, "stop after migrating this many items, 0 for no limit")
	fs.IntVar(&migrateEnv.workers, "workers", 4, "concurrent storage writers")
	migrateCommand.MarkFlagRequired("target")
}

func runMigrate(migrateEnv *migrateFlags) error {
	appConfig, _, err := global.LoadConfig(migrateEnv.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      "info",
		Production: appConfig.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	global.Logger = lg

	db, err := dao.NewDBEngine(appConfig.Database, appConfig.Server.RunMode)
	if err != nil {
		return fmt.Errorf("initDatabase: %w", err)
	}

	// 当前驱动仍用于读取待迁移内容
	current, err := storage.NewClient(&appConfig.Storage, storage.WithDB(db), storage.WithLogger(lg))
	if err != nil {
		return fmt.Errorf("initContentStorage: %w", err)
	}
	global.ContentStorage = current

	targetConfig := appConfig.Storage
	targetConfig.Type = migrateEnv.target
	target, err := storage.NewClient(&targetConfig, storage.WithDB(db), storage.WithLogger(lg))
	if err != nil {
		return fmt.Errorf("initTargetStorage: %w", err)
	}

	app, err := internalApp.NewApp(appConfig, lg, db)
	if err != nil {
		return fmt.Errorf("failed to create app container: %w", err)
	}

	result, err := app.Service.Migrate.ImportContentToStorage(context.Background(), target, service.MigrateOptions{
		MaxContentSize:    migrateEnv.maxSize,
		BatchSize:         migrateEnv.batchSize,
		MaxProcessedItems: migrateEnv.maxItems,
		Workers:           migrateEnv.workers,
	})
	if err != nil {
		return err
	}

	lg.Info("content migration finished",
		zap.String("target", migrateEnv.target),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped))
	return nil
}
