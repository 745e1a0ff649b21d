// Package debounce provides a quiet-period coalescing trigger for background jobs
// Package debounce 提供后台任务的静默期合并触发器
// A burst of Kick calls collapses into a single run after the quiet period elapses
// 一段时间内的多次 Kick 调用会在静默期结束后合并为一次执行
package debounce

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config debouncer configuration
// Config 触发器配置
type Config struct {
	// Quiet quiet period before the run fires, default 1 second
	// Quiet 触发前的静默期，默认 1 秒
	Quiet time.Duration
	// MaxWait upper bound between a first Kick and the run, default 30 seconds
	// MaxWait 首次 Kick 到实际执行之间的最长等待，默认 30 秒
	MaxWait time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Quiet:   time.Second,
		MaxWait: 30 * time.Second,
	}
}

// Debouncer coalesces bursts of Kick calls into single runs of fn
// Debouncer 将多次 Kick 合并为一次 fn 执行
type Debouncer struct {
	config Config
	logger *zap.Logger
	fn     func(ctx context.Context)

	mu       sync.Mutex
	timer    *time.Timer
	firstAt  time.Time
	pending  bool
	closed   bool
	runWg    sync.WaitGroup
	stopOnce sync.Once
}

// New creates a debouncer; fn runs on its own goroutine after the quiet period
// New 创建触发器；fn 在静默期结束后于独立协程中执行
func New(cfg *Config, fn func(ctx context.Context), logger *zap.Logger) *Debouncer {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.Quiet <= 0 {
		cfg.Quiet = time.Second
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debouncer{
		config: *cfg,
		logger: logger,
		fn:     fn,
	}
}

// Kick requests a run; repeated calls within the quiet period restart it
// Kick 请求一次执行；静默期内的重复调用会重置计时
func (d *Debouncer) Kick() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	now := time.Now()
	if !d.pending {
		d.pending = true
		d.firstAt = now
	}

	wait := d.config.Quiet
	// MaxWait caps starvation under a continuous mutation stream
	// MaxWait 防止持续的变更流导致任务饿死
	if deadline := d.firstAt.Add(d.config.MaxWait); now.Add(wait).After(deadline) {
		wait = time.Until(deadline)
		if wait < 0 {
			wait = 0
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(wait, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.runWg.Add(1)
	d.mu.Unlock()

	defer d.runWg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("debounced run panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	d.fn(context.Background())
}

// Stop cancels pending triggers and waits for an in-flight run to finish
// Stop 取消待触发的执行并等待进行中的执行结束
func (d *Debouncer) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		if d.timer != nil {
			d.timer.Stop()
		}
		d.mu.Unlock()
		d.runWg.Wait()
	})
}
