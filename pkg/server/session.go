package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/host"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Session is one browser connection driving one tooltip.
type Session struct {
	ID string

	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	loop  *host.Loop
	page  *host.Page
	ctrl  *tooltip.Controller
	track *layoutTracker

	// placement is the placement of the computation in flight. It is only
	// touched on the loop.
	placement geometry.Placement

	// mu serializes connection writes.
	mu     sync.Mutex
	closed atomic.Bool
	done   chan struct{}
	once   sync.Once

	onClose func(*Session)
}

func newSession(conn *websocket.Conn, config *Config, solver geometry.Solver,
	wrapTracker func(tooltip.AutoUpdater) tooltip.AutoUpdater, hello Frame) *Session {
	s := &Session{
		conn:   conn,
		config: config,
		done:   make(chan struct{}),
		track:  &layoutTracker{},
	}
	s.loop = host.NewLoop(host.WithLogger(config.Logger))
	s.page = &host.Page{
		Loop:       s.loop,
		TriggerEl:  host.NewElement(nil),
		FloatingEl: host.NewElement(s.sendPosition),
	}
	s.applyRects(hello)

	cfg := config.Tooltip
	if hello.Placement != "" {
		cfg.Placement = hello.Placement
	}

	var tracker tooltip.AutoUpdater = s.track
	if wrapTracker != nil {
		tracker = wrapTracker(tracker)
	}

	s.ctrl = tooltip.New(s.page,
		tooltip.WithConfig(cfg),
		tooltip.WithSolver(s.recordPlacement(solver)),
		tooltip.WithAutoUpdater(tracker),
		tooltip.WithLogger(config.Logger),
	)
	s.ID = s.ctrl.ID()
	s.logger = config.Logger.With("session", s.ID)
	return s
}

// Controller returns the session's controller. It must only be used on
// the session loop, e.g. from Dispatch.
func (s *Session) Controller() *tooltip.Controller { return s.ctrl }

// Dispatch runs fn on the session loop.
func (s *Session) Dispatch(fn func()) bool { return s.loop.Dispatch(fn) }

// recordPlacement remembers the resolved placement for the position frame
// that SetPosition triggers right after the computation.
func (s *Session) recordPlacement(solver geometry.Solver) geometry.Solver {
	return geometry.SolverFunc(func(ctx context.Context, req geometry.Request) (geometry.Result, error) {
		res, err := solver.Compute(ctx, req)
		if err == nil {
			s.placement = res.Placement
		}
		return res, err
	})
}

// start mounts the controller and runs the session loops.
func (s *Session) start() {
	s.ctrl.OnNotify(func(n tooltip.Notification) {
		s.send(notifyFrame(n))
		s.send(visibilityFrame(n == tooltip.Shown, s.ID))
	})
	s.loop.Dispatch(s.ctrl.Mount)

	go s.loop.Run()
	go s.ReadLoop()
	go s.WriteLoop()
}

// handleFrame applies a decoded client frame. It runs on the loop.
func (s *Session) handleFrame(f Frame) {
	switch f.Type {
	case FramePointer:
		ev, _ := ParseEvent(f.Event)
		el := s.page.TriggerEl
		if f.Target == TargetFloating {
			el = s.page.FloatingEl
		}
		el.Emit(ev)

	case FrameLayout:
		s.applyRects(f)
		s.track.changed()

	case FrameRendered:
		s.applyRects(f)
		s.ctrl.UpdatePosition(context.Background())

	case FrameHello:
		s.logger.Warn("duplicate hello ignored")
	}
}

func (s *Session) applyRects(f Frame) {
	if f.Viewport != nil {
		s.page.View = *f.Viewport
	}
	if f.Trigger != nil {
		s.page.TriggerEl.SetRect(*f.Trigger)
	}
	if f.Floating != nil {
		s.page.FloatingEl.SetRect(*f.Floating)
	}
}

func (s *Session) sendPosition(p geometry.Point) {
	s.send(positionFrame(p, s.placement))
}

// send writes f to the connection. Safe for concurrent use.
func (s *Session) send(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write error", "error", err)
	}
}

// Close unmounts the controller, stops the loop and closes the connection.
// It is idempotent.
func (s *Session) Close() {
	s.once.Do(func() {
		unmounted := make(chan struct{})
		if s.loop.Dispatch(func() {
			s.ctrl.Unmount()
			close(unmounted)
		}) {
			select {
			case <-unmounted:
			case <-time.After(s.config.WriteTimeout):
				s.logger.Warn("unmount timed out")
			}
		}

		s.mu.Lock()
		s.closed.Store(true)
		s.conn.Close()
		s.mu.Unlock()

		s.loop.Close()
		close(s.done)
		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Info("session closed")
	})
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// layoutTracker is the session's tracking capability: layout frames from
// the browser fan out to the live subscriptions. Loop-confined.
type layoutTracker struct {
	subs   map[uint64]func()
	nextID uint64
}

func (t *layoutTracker) AutoUpdate(_, _ tooltip.Element, onChange func()) tooltip.Cleanup {
	if t.subs == nil {
		t.subs = make(map[uint64]func())
	}
	t.nextID++
	id := t.nextID
	t.subs[id] = onChange
	return func() { delete(t.subs, id) }
}

func (t *layoutTracker) changed() {
	fns := make([]func(), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}
