package tooltip

import (
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

// Cleanup releases a registration. Calling it more than once is safe for
// every Cleanup this package returns.
type Cleanup func()

// Event is a pointer event the controller listens for.
type Event uint8

const (
	PointerEnter Event = iota + 1
	PointerLeave
)

// String returns the DOM-style event name.
func (e Event) String() string {
	switch e {
	case PointerEnter:
		return "pointerenter"
	case PointerLeave:
		return "pointerleave"
	default:
		return "unknown"
	}
}

// Element is a handle to a host element. The controller measures it,
// attaches listeners to it and, for the floating element, writes its
// position. It never changes the element's structure.
type Element interface {
	// Rect returns the element's bounding box in the coordinate space of
	// the viewport. It fails when the element is detached.
	Rect() (geometry.Rect, error)

	// Listen attaches fn for ev and returns the matching detach.
	Listen(ev Event, fn func()) Cleanup

	// SetPosition writes the element's left/top.
	SetPosition(p geometry.Point)
}

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running if it has not run yet.
	Stop() bool
}

// Scheduler defers work on the host's event loop.
type Scheduler interface {
	// AfterRender runs fn once the host's next render pass has completed.
	AfterRender(fn func())

	// AfterFunc runs fn on the event loop after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Host is the rendering layer a Controller is attached to.
type Host interface {
	Scheduler

	// Trigger returns the hovered element, or nil before it is mounted.
	Trigger() Element

	// Floating returns the popup element, or nil while it is not mounted.
	// Implementations must return an untyped nil, not a typed nil pointer.
	Floating() Element

	// Viewport is the boundary the floating element is kept inside.
	Viewport() geometry.Rect
}

// AutoUpdater starts continuous position tracking. onChange must be invoked
// on the event loop whenever the layout of either element, the scroll
// position or the viewport changes. The returned Cleanup stops tracking.
type AutoUpdater interface {
	AutoUpdate(trigger, floating Element, onChange func()) Cleanup
}

// AutoUpdaterFunc adapts a function to AutoUpdater.
type AutoUpdaterFunc func(trigger, floating Element, onChange func()) Cleanup

// AutoUpdate calls f.
func (f AutoUpdaterFunc) AutoUpdate(trigger, floating Element, onChange func()) Cleanup {
	return f(trigger, floating, onChange)
}

// once wraps fn so only the first call has an effect.
func once(fn Cleanup) Cleanup {
	if fn == nil {
		return func() {}
	}
	done := false
	return func() {
		if done {
			return
		}
		done = true
		fn()
	}
}
