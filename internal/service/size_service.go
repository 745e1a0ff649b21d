package service

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// sizeCursorKey 容量统计任务的进度游标键
const sizeCursorKey = "totalsize:cursor"

// SizeService defines the size accounting service interface
// SizeService 定义容量统计服务接口
type SizeService interface {
	// CalculateUserTotalSize sums content_size over the user's visible items
	// CalculateUserTotalSize 统计用户可见条目的内容字节总和
	CalculateUserTotalSize(ctx context.Context, uid int64) (int64, error)

	// UpdateTotalSizes walks the change feed from the persisted cursor,
	// recomputing the totals of affected users; re-entrant calls fail fast
	// UpdateTotalSizes 从持久化游标消费变更并重算受影响用户的总量，重入调用立即失败
	UpdateTotalSizes(ctx context.Context) error
}

// sizeService implementation of SizeService interface
// sizeService 实现 SizeService 接口
type sizeService struct {
	dao     *dao.Dao
	sf      *singleflight.Group
	logger  *zap.Logger
	config  *ServiceConfig
	running atomic.Bool
}

// NewSizeService creates SizeService instance
// NewSizeService 创建 SizeService 实例
func NewSizeService(d *dao.Dao, sf *singleflight.Group, logger *zap.Logger, config *ServiceConfig) SizeService {
	if sf == nil {
		sf = &singleflight.Group{}
	}
	return &sizeService{dao: d, sf: sf, logger: logger, config: config}
}

// CalculateUserTotalSize sums content_size over the user's visible items
// CalculateUserTotalSize 统计用户可见条目的内容字节总和，相同用户的并发请求合并执行
func (s *sizeService) CalculateUserTotalSize(ctx context.Context, uid int64) (int64, error) {
	v, err, _ := s.sf.Do("usersize:"+strconv.FormatInt(uid, 10), func() (interface{}, error) {
		return s.dao.Items().SumSizeByUser(ctx, uid)
	})
	if err != nil {
		return 0, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return v.(int64), nil
}

// UpdateTotalSizes walks the change feed and persists per-user totals
// UpdateTotalSizes 消费变更并持久化用户总量
// 游标只在一批成功写入后推进，崩溃后从游标续跑
func (s *sizeService) UpdateTotalSizes(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return code.ErrorSizeJobRunning
	}
	defer s.running.Store(false)

	raw, err := s.dao.KeyValues().Get(ctx, sizeCursorKey)
	if err != nil {
		return err
	}
	cursor, _ := strconv.ParseInt(raw, 10, 64)

	batch := s.config.App.changeBatchSize()
	for {
		changes, err := s.dao.Changes().ListSince(ctx, cursor, batch)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		uids := make(map[int64]bool)
		for _, change := range changes {
			uids[change.UID] = true
		}

		for uid := range uids {
			total, err := s.dao.Items().SumSizeByUser(ctx, uid)
			if err != nil {
				return err
			}
			if err := s.dao.Users().UpdateTotalSize(ctx, uid, total); err != nil {
				return err
			}
			s.logger.Debug("user total size updated",
				zap.Int64("uid", uid),
				zap.Int64("total_size", total))
		}

		cursor = changes[len(changes)-1].ID
		if err := s.dao.KeyValues().Set(ctx, sizeCursorKey, strconv.FormatInt(cursor, 10)); err != nil {
			return err
		}
		if len(changes) < batch {
			return nil
		}
	}
}
