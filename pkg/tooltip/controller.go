package tooltip

import (
	"context"
	"log/slog"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

// Controller drives one tooltip instance.
type Controller struct {
	host        Host
	cfg         Config
	solver      geometry.Solver
	autoUpdater AutoUpdater
	logger      *slog.Logger
	ctx         context.Context
	id          string

	phase phase

	// showGen invalidates render checkpoints scheduled by an earlier Show.
	showGen uint64

	mountRequested bool
	mountReady     bool
	disposed       bool

	// pendingHide is the single outstanding delayed hide. hideSeq lets a
	// timer callback that was already queued when it got cancelled notice
	// that it is stale.
	pendingHide Timer
	hideSeq     uint64

	triggerListeners  []Cleanup
	floatingListeners []Cleanup
	tracking          Cleanup

	last        geometry.Result
	hasPosition bool

	notifier notifier
}

// New creates a Controller for host. Misconfigured values are clamped and
// logged; see Config.Normalize.
func New(host Host, opts ...Option) *Controller {
	s := settings{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.solver == nil {
		s.solver = geometry.DefaultSolver
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.autoUpdater == nil {
		if a, ok := host.(AutoUpdater); ok {
			s.autoUpdater = a
		}
	}
	if s.id == "" {
		s.id = NewID()
	}

	cfg, issues := s.cfg.Normalize()
	for _, issue := range issues {
		s.logger.Warn("tooltip config corrected", "id", s.id, "error", issue)
	}

	return &Controller{
		host:        host,
		cfg:         cfg,
		solver:      s.solver,
		autoUpdater: s.autoUpdater,
		logger:      s.logger.With("tooltip", s.id),
		ctx:         s.ctx,
		id:          s.id,
	}
}

// ID returns the popup identifier.
func (c *Controller) ID() string { return c.id }

// Config returns the normalized configuration.
func (c *Controller) Config() Config { return c.cfg }

// Visible reports whether the floating element is shown (or about to be).
func (c *Controller) Visible() bool { return c.phase != phaseHidden }

// State returns the current state.
func (c *Controller) State() State {
	switch {
	case c.phase == phaseHidden:
		return StateHidden
	case c.pendingHide != nil:
		return StatePendingHide
	case c.phase == phaseShowing:
		return StateShowing
	default:
		return StateShown
	}
}

// Position returns the last applied position, if any.
func (c *Controller) Position() (geometry.Result, bool) {
	return c.last, c.hasPosition
}

// PendingTimers returns the number of outstanding delayed hides (0 or 1).
func (c *Controller) PendingTimers() int {
	if c.pendingHide != nil {
		return 1
	}
	return 0
}

// Tracking reports whether a tracking subscription is active.
func (c *Controller) Tracking() bool { return c.tracking != nil }

// Disposed reports whether Unmount has run.
func (c *Controller) Disposed() bool { return c.disposed }

// OnNotify registers fn for every notification.
func (c *Controller) OnNotify(fn func(Notification)) Cleanup {
	return c.notifier.add(fn)
}

// OnShown registers fn for Shown notifications.
func (c *Controller) OnShown(fn func()) Cleanup {
	return c.notifier.add(func(n Notification) {
		if n == Shown {
			fn()
		}
	})
}

// OnHidden registers fn for Hidden notifications.
func (c *Controller) OnHidden(fn func()) Cleanup {
	return c.notifier.add(func(n Notification) {
		if n == Hidden {
			fn()
		}
	})
}

// Show makes the floating element visible. The position is computed and
// Shown emitted after the host's next render checkpoint, once the floating
// element is mounted and measurable. Show is a silent no-op while disabled,
// after Unmount, or when already showing.
func (c *Controller) Show() {
	if c.disposed || c.cfg.Disabled || c.phase != phaseHidden {
		return
	}

	c.phase = phaseShowing
	c.showGen++
	gen := c.showGen
	c.logger.Debug("tooltip showing")

	c.host.AfterRender(func() {
		c.completeShow(gen)
	})
}

func (c *Controller) completeShow(gen uint64) {
	if c.disposed || c.phase != phaseShowing || gen != c.showGen {
		return
	}

	c.UpdatePosition(c.ctx)
	c.phase = phaseShown
	c.attachFloating()
	c.startTracking()

	c.logger.Debug("tooltip shown", "placement", c.last.Placement, "x", c.last.X, "y", c.last.Y)
	c.notifier.emit(Shown)
}

// Hide makes the floating element hidden and emits Hidden. It releases the
// floating listeners, the tracking subscription and any pending delayed
// hide. Calling Hide while hidden does nothing.
func (c *Controller) Hide() {
	if c.disposed || c.phase == phaseHidden {
		return
	}

	c.phase = phaseHidden
	c.showGen++
	c.releaseFloating()

	c.logger.Debug("tooltip hidden")
	c.notifier.emit(Hidden)
}

// releaseFloating undoes everything acquired for the shown period.
func (c *Controller) releaseFloating() {
	c.cancelPendingHide()
	c.stopTracking()
	c.detachFloating()
}
