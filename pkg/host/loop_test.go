package host

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// syncBuffer guards a bytes.Buffer for use as a log sink across goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startLoop(t *testing.T, opts ...LoopOption) *Loop {
	t.Helper()
	l := NewLoop(opts...)
	go l.Run()
	t.Cleanup(l.Close)
	return l
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoop_DispatchOrder(t *testing.T) {
	l := startLoop(t)
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Dispatch(func() { got = append(got, i) })
	}
	var out []int
	if err := l.DispatchWait(waitCtx(t), func() { out = append(out, got...) }); err != nil {
		t.Fatalf("DispatchWait() = %v", err)
	}
	for i, v := range out {
		if v != i {
			t.Fatalf("order = %v", out)
		}
	}
	if len(out) != 10 {
		t.Fatalf("ran %d functions, want 10", len(out))
	}
}

func TestLoop_AfterRenderRunsAfterDispatch(t *testing.T) {
	l := startLoop(t)
	var steps []string
	err := l.DispatchWait(waitCtx(t), func() {
		l.AfterRender(func() {
			steps = append(steps, "render")
			l.AfterRender(func() { steps = append(steps, "next render") })
		})
		steps = append(steps, "dispatch")
	})
	if err != nil {
		t.Fatalf("DispatchWait() = %v", err)
	}
	var got string
	l.DispatchWait(waitCtx(t), func() { got = strings.Join(steps, ",") })
	if got != "dispatch,render,next render" {
		t.Errorf("steps = %s", got)
	}
}

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l := startLoop(t)
	fired := make(chan struct{})
	var stopped tooltip.Timer
	l.DispatchWait(waitCtx(t), func() {
		l.AfterFunc(5*time.Millisecond, func() { close(fired) })
		stopped = l.AfterFunc(5*time.Millisecond, func() { t.Error("stopped timer fired") })
	})
	l.DispatchWait(waitCtx(t), func() {
		if !stopped.Stop() {
			t.Error("Stop() = false for a pending timer")
		}
		if stopped.Stop() {
			t.Error("second Stop() = true")
		}
	})

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
	time.Sleep(20 * time.Millisecond)
}

func TestLoop_RecoversPanics(t *testing.T) {
	logs := &syncBuffer{}
	l := startLoop(t, WithLogger(slog.New(slog.NewTextHandler(logs, nil))))

	l.Dispatch(func() { panic("boom") })
	ran := false
	if err := l.DispatchWait(waitCtx(t), func() { ran = true }); err != nil {
		t.Fatalf("DispatchWait() = %v", err)
	}
	if !ran {
		t.Fatal("loop stopped after a panic")
	}
	if !strings.Contains(logs.String(), "dispatch panic") {
		t.Errorf("panic not logged: %s", logs.String())
	}
}

func TestLoop_Close(t *testing.T) {
	l := NewLoop()
	go l.Run()
	l.Close()
	l.Close()

	if err := l.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if l.Dispatch(func() {}) {
		t.Error("Dispatch() accepted work after Close")
	}
	if err := l.DispatchWait(context.Background(), func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("DispatchWait() = %v, want ErrClosed", err)
	}
}

func TestLoop_QueueFull(t *testing.T) {
	l := NewLoop(WithQueueSize(1), WithLogger(slog.New(slog.NewTextHandler(&syncBuffer{}, nil))))
	if !l.Dispatch(func() {}) {
		t.Fatal("first Dispatch() rejected")
	}
	if l.Dispatch(func() {}) {
		t.Error("Dispatch() accepted work beyond the queue size")
	}
	l.Close()
}

func newPage(l *Loop) *Page {
	p := &Page{
		Loop:       l,
		TriggerEl:  NewElement(nil),
		FloatingEl: NewElement(nil),
		View:       geometry.Rect{Width: 1024, Height: 768},
	}
	p.TriggerEl.SetRect(geometry.Rect{X: 462, Y: 364, Width: 100, Height: 40})
	p.FloatingEl.SetRect(geometry.Rect{Width: 120, Height: 32})
	return p
}

func TestLoop_AfterFuncSurvivesFullQueue(t *testing.T) {
	l := NewLoop(WithQueueSize(1), WithLogger(slog.New(slog.NewTextHandler(&syncBuffer{}, nil))))
	t.Cleanup(l.Close)

	if !l.Dispatch(func() {}) {
		t.Fatal("Dispatch() rejected")
	}
	fired := make(chan struct{})
	l.AfterFunc(0, func() { close(fired) })

	// The timer is due while the queue is still full.
	time.Sleep(20 * time.Millisecond)
	go l.Run()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer callback was dropped while the queue was full")
	}
}

func TestLoop_AfterFuncAfterClose(t *testing.T) {
	l := NewLoop(WithQueueSize(1))
	l.Dispatch(func() {})
	l.AfterFunc(0, func() { t.Error("timer fired on a closed loop") })
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close() blocked behind a pending timer delivery")
	}
	time.Sleep(10 * time.Millisecond)
}

func TestPage_ControllerOnRealLoop(t *testing.T) {
	l := startLoop(t)
	page := newPage(l)
	ctx := waitCtx(t)

	events := make(chan tooltip.Notification, 4)
	var c *tooltip.Controller
	l.DispatchWait(ctx, func() {
		c = tooltip.New(page,
			tooltip.WithHoverDelay(10*time.Millisecond),
			tooltip.WithLogger(slog.New(slog.NewTextHandler(&syncBuffer{}, nil))),
		)
		c.OnNotify(func(n tooltip.Notification) { events <- n })
		c.Mount()
	})

	l.DispatchWait(ctx, func() { page.TriggerEl.Emit(tooltip.PointerEnter) })
	if n := <-events; n != tooltip.Shown {
		t.Fatalf("first notification = %v, want show", n)
	}

	var pos geometry.Result
	l.DispatchWait(ctx, func() {
		pos, _ = c.Position()
		page.TriggerEl.Emit(tooltip.PointerLeave)
	})
	if pos.X != 452 || pos.Y != 324 {
		t.Errorf("position = (%g, %g), want (452, 324)", pos.X, pos.Y)
	}

	select {
	case n := <-events:
		if n != tooltip.Hidden {
			t.Fatalf("second notification = %v, want hide", n)
		}
	case <-ctx.Done():
		t.Fatal("delayed hide never fired")
	}

	l.DispatchWait(ctx, func() {
		c.Unmount()
		if page.TriggerEl.Listeners()+page.FloatingEl.Listeners() != 0 {
			t.Error("listeners leaked after unmount")
		}
	})
}

func TestPage_DetachedElements(t *testing.T) {
	p := &Page{TriggerEl: NewElement(nil), FloatingEl: NewElement(nil)}
	if p.Trigger() != nil || p.Floating() != nil {
		t.Fatal("unmounted elements must be reported as nil")
	}
	if _, err := p.TriggerEl.Rect(); !errors.Is(err, ErrDetached) {
		t.Errorf("Rect() = %v, want ErrDetached", err)
	}

	var moved []geometry.Point
	e := NewElement(func(pt geometry.Point) { moved = append(moved, pt) })
	e.SetRect(geometry.Rect{Width: 10, Height: 10})
	e.SetPosition(geometry.Point{X: 3, Y: 4})
	r, _ := e.Rect()
	if len(moved) != 1 || r.X != 3 || r.Y != 4 {
		t.Errorf("SetPosition not applied: rect=%v moved=%v", r, moved)
	}
	e.Detach()
	if e.Mounted() {
		t.Error("Mounted() after Detach")
	}
}

func TestPollingAutoUpdater_DetectsChanges(t *testing.T) {
	l := startLoop(t)
	page := newPage(l)
	ctx := waitCtx(t)

	changes := make(chan struct{}, 8)
	var stop tooltip.Cleanup
	p := NewPollingAutoUpdater(l, 2*time.Millisecond)
	l.DispatchWait(ctx, func() {
		stop = p.AutoUpdate(page.TriggerEl, page.FloatingEl, func() { changes <- struct{}{} })
	})

	l.DispatchWait(ctx, func() {
		page.TriggerEl.SetRect(geometry.Rect{X: 10, Y: 10, Width: 100, Height: 40})
	})
	select {
	case <-changes:
	case <-ctx.Done():
		t.Fatal("layout change not detected")
	}

	l.DispatchWait(ctx, func() { stop() })
	l.DispatchWait(ctx, func() {
		page.TriggerEl.SetRect(geometry.Rect{X: 50, Y: 50, Width: 100, Height: 40})
	})
	time.Sleep(20 * time.Millisecond)
	l.DispatchWait(ctx, func() {})
	if len(changes) != 0 {
		t.Error("onChange ran after cleanup")
	}
}

func TestNewPollingAutoUpdater_DefaultInterval(t *testing.T) {
	if p := NewPollingAutoUpdater(nil, 0); p.interval != DefaultPollInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultPollInterval)
	}
}
