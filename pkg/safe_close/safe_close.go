// Package safe_close 提供多协程场景下的优雅关闭协调
package safe_close

import "sync"

// SafeClose 协调一组后台协程的关闭流程：
// 任意一方调用 SendCloseSignal 后，所有 Attach 的协程收到关闭信号，
// WaitClosed 阻塞直到全部协程调用 done。
type SafeClose struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	closed   bool
	closeErr error
	signal   chan struct{}
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		signal: make(chan struct{}),
	}
}

// Attach 注册一个需要参与优雅关闭的协程。
// f 内部必须在退出前调用 done，并监听 closeSignal。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.signal)
}

// SendCloseSignal 发出关闭信号，err 记录首个关闭原因，可为 nil
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.signal)
}

// ReceiveCloseSignal 返回关闭信号通道
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.signal
}

// WaitClosed 等待所有已注册协程退出，返回关闭原因
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
