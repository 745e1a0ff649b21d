package service

import (
	"context"
	"sync"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
	"github.com/haierkeys/note-share-sync-service/pkg/storage"
	"github.com/haierkeys/note-share-sync-service/pkg/workerpool"

	"go.uber.org/zap"
)

// MigrateOptions bounds for one import invocation
// MigrateOptions 单次迁移调用的边界参数
type MigrateOptions struct {
	// MaxContentSize 超过该字节数的条目跳过不迁移，0 表示不限制
	MaxContentSize int64
	// BatchSize 单批提交的条目数
	BatchSize int
	// MaxProcessedItems 单次调用处理条目数的上限，0 表示不限制
	MaxProcessedItems int
	// Workers 并发写入外部存储的工作协程数
	Workers int
}

// MigrateResult outcome of one import invocation
// MigrateResult 单次迁移调用的结果
type MigrateResult struct {
	Processed int // Items migrated // 已迁移条目数
	Skipped   int // Items skipped // 跳过条目数
}

// MigrateService defines the content migration service interface
// MigrateService 定义内容迁移服务接口
type MigrateService interface {
	// ImportContentToStorage copies item content onto the target driver
	// without touching updated_at, so clients are not forced to redownload
	// ImportContentToStorage 将条目内容复制到目标驱动，不触碰 updated_at，
	// 客户端不会被迫重新下载
	ImportContentToStorage(ctx context.Context, target storage.Storager, opts MigrateOptions) (*MigrateResult, error)
}

// migrateService implementation of MigrateService interface
// migrateService 实现 MigrateService 接口
type migrateService struct {
	dao    *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewMigrateService creates MigrateService instance
// NewMigrateService 创建 MigrateService 实例
func NewMigrateService(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) MigrateService {
	return &migrateService{dao: d, logger: logger, config: config}
}

// ImportContentToStorage copies item content onto the target driver
// ImportContentToStorage 将条目内容复制到目标驱动
func (s *migrateService) ImportContentToStorage(ctx context.Context, target storage.Storager, opts MigrateOptions) (*MigrateResult, error) {
	if target == nil {
		return nil, code.ErrorInvalidStorageType
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	pool := workerpool.New(&workerpool.Config{MaxWorkers: opts.Workers, QueueSize: opts.BatchSize}, s.logger)
	defer pool.Close()

	result := &MigrateResult{}
	afterID := ""

	for {
		batch := opts.BatchSize
		if opts.MaxProcessedItems > 0 && result.Processed+batch > opts.MaxProcessedItems {
			batch = opts.MaxProcessedItems - result.Processed
		}
		if batch <= 0 {
			return result, nil
		}

		items, err := s.dao.Items().ListForMigration(ctx, target.Type(), opts.MaxContentSize, afterID, batch)
		if err != nil {
			return result, err
		}
		if len(items) == 0 {
			return result, nil
		}
		afterID = items[len(items)-1].ID

		// 外部存储写入并发执行，写库放在全部写入成功之后
		var mu sync.Mutex
		copied := make(map[string]bool, len(items))
		var wg sync.WaitGroup
		for _, item := range items {
			item := item
			if int64(len(item.Content)) != item.ContentSize {
				// 内容没能完整加载，跳过
				s.logger.Warn("item content incomplete, migration skipped",
					zap.String("item_id", item.ID),
					zap.String("storage", item.ContentStorage))
				result.Skipped++
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := pool.Submit(ctx, func(ctx context.Context) error {
					return target.Write(ctx, item.ID, item.Content)
				})
				if err != nil {
					s.logger.Warn("content copy failed",
						zap.String("item_id", item.ID),
						zap.String("target", target.Type()),
						zap.Error(err))
					return
				}
				mu.Lock()
				copied[item.ID] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		for _, item := range items {
			if !copied[item.ID] {
				if int64(len(item.Content)) == item.ContentSize {
					result.Skipped++
				}
				continue
			}
			// 迁往外部驱动时清空行内副本，迁回 database 驱动时保留；updated_at 保持不变
			var inline []byte
			if target.Type() == storage.Database {
				inline = item.Content
			}
			if err := s.dao.Items().UpdateContentPlacement(ctx, item.ID, target.Type(), inline); err != nil {
				return result, err
			}
			result.Processed++
		}

		s.logger.Info("content migration batch done",
			zap.Int("batch", len(items)),
			zap.Int("processed", result.Processed),
			zap.Int("skipped", result.Skipped))

		if len(items) < batch {
			return result, nil
		}
		if opts.MaxProcessedItems > 0 && result.Processed >= opts.MaxProcessedItems {
			return result, nil
		}
	}
}
