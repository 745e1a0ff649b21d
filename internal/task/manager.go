package task

import (
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/service"
	"github.com/haierkeys/note-share-sync-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有后台任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks(svc *service.Service, reconcileInterval, totalSizeInterval time.Duration) {
	m.scheduler.AddTask(NewReconcileTask(svc.Reconcile, reconcileInterval))
	m.scheduler.AddTask(NewTotalSizeTask(svc.Size, totalSizeInterval))
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
