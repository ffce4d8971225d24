// Package loop provides a single-threaded host loop for the routing state machine.
//
// Every routing call must happen on one logical thread. Loop is that thread for hosts
// without a UI toolkit: tasks are posted from any goroutine and run one at a time,
// either by Run on a dedicated goroutine or by Drain on the caller's.
package loop

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ribs/internal/logging"
)

// Loop runs posted tasks sequentially. It implements ports.Scheduler.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}

	interval time.Duration
	onFrame  func(dt time.Duration)
	logger   *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithFrames calls onFrame every interval while Run is active, with the time elapsed
// since the previous frame. It is used to step animations.
func WithFrames(interval time.Duration, onFrame func(dt time.Duration)) Option {
	return func(l *Loop) {
		l.interval = interval
		l.onFrame = onFrame
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn for the next frame. It is safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending reports the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Frame runs the tasks queued before the call. Tasks they post wait for the next frame.
func (l *Loop) Frame() int {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain runs frames until no task is left and returns how many tasks ran.
func (l *Loop) Drain() int {
	total := 0
	for {
		n := l.Frame()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Run processes tasks on the calling goroutine until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.onFrame != nil && l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.Debug("loop started", "frame_interval", l.interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "pending", l.Pending())
			return ctx.Err()
		case <-l.wake:
			l.Frame()
		case now := <-tick:
			l.Frame()
			l.onFrame(now.Sub(last))
			last = now
		}
	}
}

// Do runs fn on the loop and waits for its result. It must not be called from a
// task, since the loop would wait for itself.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	l.Post(func() {
		done <- fn()
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
