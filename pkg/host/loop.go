package host

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// DefaultQueueSize is the dispatch buffer used when none is configured.
const DefaultQueueSize = 256

// ErrClosed is returned by DispatchWait once the loop is closed.
var ErrClosed = errors.New("host: loop closed")

// Dispatcher posts work onto an event loop.
type Dispatcher interface {
	// Dispatch queues fn and reports whether it was accepted.
	Dispatch(fn func()) bool
}

// Loop is a single-goroutine event loop implementing tooltip.Scheduler.
type Loop struct {
	dispatchCh chan func()
	done       chan struct{}
	stopped    chan struct{}
	closed     atomic.Bool
	closeOnce  sync.Once
	running    atomic.Bool

	// renders is only touched on the loop goroutine.
	renders []func()

	logger *slog.Logger
}

var _ tooltip.Scheduler = (*Loop)(nil)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the loop's logger.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithQueueSize sets the dispatch buffer size.
func WithQueueSize(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.dispatchCh = make(chan func(), n)
		}
	}
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		dispatchCh: make(chan func(), DefaultQueueSize),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes dispatched functions until Close. It must be called once.
func (l *Loop) Run() {
	if !l.running.CompareAndSwap(false, true) {
		l.logger.Warn("loop already running")
		return
	}
	defer close(l.stopped)

	for {
		select {
		case fn := <-l.dispatchCh:
			l.execute(fn)

		case <-l.done:
			return
		}
	}
}

// execute runs fn, then completes a render pass.
func (l *Loop) execute(fn func()) {
	l.safely("dispatch", fn)
	l.flushRenders()
}

func (l *Loop) flushRenders() {
	if len(l.renders) == 0 {
		return
	}
	queued := l.renders
	l.renders = nil
	for _, fn := range queued {
		l.safely("render callback", fn)
	}

	// Callbacks queued during this pass wait for the next one.
	if len(l.renders) > 0 {
		l.Dispatch(func() {})
	}
}

func (l *Loop) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error(what+" panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Dispatch queues fn to run on the loop. It never blocks: when the loop is
// closed or the queue is full the function is dropped and false returned.
func (l *Loop) Dispatch(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.dispatchCh <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
		return false
	}
}

// DispatchWait runs fn on the loop and waits for it and the render pass that
// follows it to finish.
func (l *Loop) DispatchWait(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Dispatch(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}

	// The render pass runs after fn returns; a second no-op round trip
	// waits for it.
	select {
	case <-finished:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
	flushed := make(chan struct{})
	if !l.Dispatch(func() { close(flushed) }) {
		return ErrClosed
	}
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// AfterRender queues fn for the render pass that follows the currently
// executing dispatch. It must be called on the loop goroutine.
func (l *Loop) AfterRender(fn func()) {
	l.renders = append(l.renders, fn)
}

// AfterFunc runs fn on the loop after d. Unlike Dispatch, delivery waits
// for queue space, so a due timer is only lost when the loop closes.
func (l *Loop) AfterFunc(d time.Duration, fn func()) tooltip.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.deliver(func() {
			if t.fired.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// deliver queues fn, blocking while the queue is full.
func (l *Loop) deliver(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.dispatchCh <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. Queued functions that have not started are
// dropped. Close is idempotent.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Done is closed when Close is called.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Wait blocks until Run has returned or ctx is done.
func (l *Loop) Wait(ctx context.Context) error {
	if !l.running.Load() {
		return nil
	}
	select {
	case <-l.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type loopTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

// Stop prevents the callback from running. It reports false when the
// callback already ran or the timer was already stopped.
func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return !t.fired.Swap(true)
}
