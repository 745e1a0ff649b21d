package service

import (
	"github.com/haierkeys/note-share-sync-service/internal/dao"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service 聚合全部业务服务
type Service struct {
	Item      ItemService
	Share     ShareService
	Change    ChangeService
	Reconcile ReconcileService
	Size      SizeService
	Migrate   MigrateService
	User      UserService

	SF *singleflight.Group
}

// New 创建业务服务集合
func New(d *dao.Dao, logger *zap.Logger, config *ServiceConfig) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}

	sf := &singleflight.Group{}
	reconcile := NewReconcileService(d, logger, config)

	return &Service{
		Item:      NewItemService(d, logger, config),
		Share:     NewShareService(d, reconcile, logger, config),
		Change:    NewChangeService(d, logger, config),
		Reconcile: reconcile,
		Size:      NewSizeService(d, sf, logger, config),
		Migrate:   NewMigrateService(d, logger, config),
		User:      NewUserService(d, logger, config),
		SF:        sf,
	}
}
