package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrClosed is returned for work submitted after the loop stopped.
var ErrClosed = errors.New("shell loop closed")

// Loop runs tasks one at a time on a single goroutine. Every view-model is
// owned by the loop; other goroutines reach them through Do and Post.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
	logger *zap.Logger
}

// NewLoop creates a stopped loop. Call Run to start processing.
func NewLoop(logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger.Named("loop"),
	}
}

// Post queues fn without waiting. It is safe to call from inside a task and
// reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Task states shared by Do and the queued task.
const (
	taskQueued int32 = iota
	taskStarted
	taskAbandoned
)

// Do runs fn on the loop and waits for its result. It must not be called
// from a task; tasks call model methods directly.
//
// When ctx ends before fn starts, fn is skipped and ctx.Err is returned.
// Once fn has started Do waits for it, so a nil error always means fn ran
// and ctx.Err always means it did not.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	var state atomic.Int32
	task := func() {
		if !state.CompareAndSwap(taskQueued, taskStarted) {
			return
		}
		result <- l.safe(fn)
	}
	if !l.Post(task) {
		return ErrClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		if state.CompareAndSwap(taskQueued, taskAbandoned) {
			return ctx.Err()
		}
		return <-result
	case <-l.done:
		if state.CompareAndSwap(taskQueued, taskAbandoned) {
			return ErrClosed
		}
		return <-result
	}
}

func (l *Loop) safe(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Task panicked", zap.Any("panic", r))
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn()
}

// Run processes tasks until ctx is cancelled or Close is called. Tasks
// still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) {
	defer l.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if len(l.queue) == 0 || l.closed {
				l.mu.Unlock()
				break
			}
			task := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			l.safe(func() error { task(); return nil })
		}
	}
}

// Close stops the loop. It is safe to call more than once.
func (l *Loop) Close() {
	l.shutdown()
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if n := len(l.queue); n > 0 {
		l.logger.Debug("Dropping queued tasks", zap.Int("count", n))
	}
	l.queue = nil
	close(l.done)
}
