package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/service"
)

// ReconcileTask 分享对账兜底任务
// 常规触发走防抖器，这里只做掉了触发时的周期兜底
type ReconcileTask struct {
	svc      service.ReconcileService
	interval time.Duration
}

// NewReconcileTask 创建分享对账兜底任务
func NewReconcileTask(svc service.ReconcileService, interval time.Duration) *ReconcileTask {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ReconcileTask{svc: svc, interval: interval}
}

func (t *ReconcileTask) Name() string {
	return "share-reconcile"
}

func (t *ReconcileTask) Run(ctx context.Context) error {
	return t.svc.Run(ctx)
}

func (t *ReconcileTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *ReconcileTask) IsStartupRun() bool {
	return true
}
