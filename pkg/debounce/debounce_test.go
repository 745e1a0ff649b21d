package debounce

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestKickCoalescesBurst(t *testing.T) {
	var runs atomic.Int64
	d := New(&Config{Quiet: 30 * time.Millisecond}, func(ctx context.Context) {
		runs.Add(1)
	}, nil)
	defer d.Stop()

	// 静默期内的连续 Kick 只应触发一次执行
	for i := 0; i < 10; i++ {
		d.Kick()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestKickAfterQuietRunsAgain(t *testing.T) {
	var runs atomic.Int64
	d := New(&Config{Quiet: 20 * time.Millisecond}, func(ctx context.Context) {
		runs.Add(1)
	}, nil)
	defer d.Stop()

	d.Kick()
	time.Sleep(60 * time.Millisecond)
	d.Kick()
	time.Sleep(60 * time.Millisecond)

	if got := runs.Load(); got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
}

func TestMaxWaitBoundsStarvation(t *testing.T) {
	var runs atomic.Int64
	d := New(&Config{Quiet: 50 * time.Millisecond, MaxWait: 120 * time.Millisecond}, func(ctx context.Context) {
		runs.Add(1)
	}, nil)
	defer d.Stop()

	// 持续 Kick 使静默期永不满足，MaxWait 应保证仍会执行
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		d.Kick()
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if runs.Load() == 0 {
		t.Error("debouncer starved: no runs under continuous kicks")
	}
}

func TestStopPreventsFurtherRuns(t *testing.T) {
	var runs atomic.Int64
	d := New(&Config{Quiet: 20 * time.Millisecond}, func(ctx context.Context) {
		runs.Add(1)
	}, nil)

	d.Kick()
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := runs.Load(); got != 0 {
		t.Errorf("runs after Stop = %d, want 0", got)
	}
	// Stop 后的 Kick 应被忽略
	d.Kick()
	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("runs after Stop+Kick = %d, want 0", got)
	}
}
