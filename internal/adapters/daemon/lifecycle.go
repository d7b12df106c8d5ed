package daemon

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc"
)

// Lifecycle shuts the daemon down after a period without requests. A zero
// idle timeout keeps the daemon running until Shutdown is called.
type Lifecycle struct {
	mu           sync.Mutex
	timer        *time.Timer
	startTime    time.Time
	lastActivity time.Time
	timeout      time.Duration
	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewLifecycle creates a lifecycle with the given idle timeout.
func NewLifecycle(timeout time.Duration) *Lifecycle {
	now := time.Now()
	l := &Lifecycle{
		startTime:    now,
		lastActivity: now,
		timeout:      timeout,
		shutdownChan: make(chan struct{}),
	}
	if timeout > 0 {
		l.timer = time.AfterFunc(timeout, l.triggerShutdown)
	}
	return l
}

// Touch records activity and restarts the idle timer.
func (l *Lifecycle) Touch() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastActivity = time.Now()
	if l.timer != nil {
		l.timer.Reset(l.timeout)
	}
}

// IdleRemaining returns the time left before an idle shutdown. It is zero
// when no idle timeout is set.
func (l *Lifecycle) IdleRemaining() time.Duration {
	if l.timeout <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return max(l.timeout-time.Since(l.lastActivity), 0)
}

// Uptime returns how long the daemon has been running.
func (l *Lifecycle) Uptime() time.Duration {
	return time.Since(l.startTime)
}

// LastActivity returns the time of the last request.
func (l *Lifecycle) LastActivity() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastActivity
}

// Done is closed when the daemon should stop.
func (l *Lifecycle) Done() <-chan struct{} {
	return l.shutdownChan
}

func (l *Lifecycle) triggerShutdown() {
	l.shutdownOnce.Do(func() {
		close(l.shutdownChan)
	})
}

// Shutdown stops the idle timer and closes Done.
func (l *Lifecycle) Shutdown() {
	if l.timer != nil {
		l.timer.Stop()
	}
	l.triggerShutdown()
}

// Interceptor records activity for every unary call.
func (l *Lifecycle) Interceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		l.Touch()
		return handler(ctx, req)
	}
}
