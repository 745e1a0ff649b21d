package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-share-sync-service/internal/service"
	"github.com/haierkeys/note-share-sync-service/pkg/code"
)

// TotalSizeTask 容量统计任务
type TotalSizeTask struct {
	svc      service.SizeService
	interval time.Duration
}

// NewTotalSizeTask 创建容量统计任务
func NewTotalSizeTask(svc service.SizeService, interval time.Duration) *TotalSizeTask {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &TotalSizeTask{svc: svc, interval: interval}
}

func (t *TotalSizeTask) Name() string {
	return "total-size"
}

func (t *TotalSizeTask) Run(ctx context.Context) error {
	err := t.svc.UpdateTotalSizes(ctx)
	if code.Is(err, code.ErrorSizeJobRunning) {
		// 上一轮还在跑，直接让路
		return nil
	}
	return err
}

func (t *TotalSizeTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *TotalSizeTask) IsStartupRun() bool {
	return false
}
