package service

import (
	"context"

	"github.com/haierkeys/note-share-sync-service/internal/dao"
	"github.com/haierkeys/note-share-sync-service/internal/dto"
	"github.com/haierkeys/note-share-sync-service/pkg/code"

	"go.uber.org/zap"
)

// ChangeService defines the change feed service interface
// ChangeService 定义变更清单服务接口
type ChangeService interface {
	// Delta returns a bounded page of changes after the given cursor
	// Delta 返回给定游标之后的一页变更
	// 零游标表示从头开始；调用无副作用，同一游标可重复读取
	Delta(ctx context.Context, uid int64, cursor int64, limit int) (*dto.DeltaPageDTO, error)
}

// changeService implementation of ChangeService interface
// changeService 实现 ChangeService 接口
type changeService struct {
	dao    *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewChangeService creates ChangeService instance
// NewChangeService 创建 ChangeService 实例
func NewChangeService(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) ChangeService {
	return &changeService{dao: d, logger: logger, config: config}
}

// Delta returns a bounded page of changes after the given cursor
// Delta 返回给定游标之后的一页变更
func (s *changeService) Delta(ctx context.Context, uid int64, cursor int64, limit int) (*dto.DeltaPageDTO, error) {
	limit = s.config.App.pageSize(limit)

	changes, err := s.dao.Changes().ListByUserSince(ctx, uid, cursor, limit+1)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	hasMore := len(changes) > limit
	if hasMore {
		changes = changes[:limit]
	}

	page := &dto.DeltaPageDTO{
		Items:   make([]*dto.ChangeDTO, 0, len(changes)),
		Cursor:  cursor,
		HasMore: hasMore,
	}
	for _, change := range changes {
		page.Items = append(page.Items, dto.ChangeToDTO(change))
		page.Cursor = change.ID
	}
	return page, nil
}
