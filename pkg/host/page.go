package host

import (
	"errors"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// ErrDetached is returned when measuring an element that is not mounted.
var ErrDetached = errors.New("host: element not mounted")

// Element is a loop-confined tooltip.Element whose rectangle is fed from
// outside, for example by a browser over a websocket.
type Element struct {
	rect       geometry.Rect
	mounted    bool
	listeners  []*listener
	nextID     uint64
	onPosition func(geometry.Point)
}

type listener struct {
	id uint64
	ev tooltip.Event
	fn func()
}

var _ tooltip.Element = (*Element)(nil)

// NewElement returns a detached element. onPosition, if set, receives every
// SetPosition call.
func NewElement(onPosition func(geometry.Point)) *Element {
	return &Element{onPosition: onPosition}
}

// SetRect records the element's measured rectangle and marks it mounted.
func (e *Element) SetRect(r geometry.Rect) {
	e.rect = r
	e.mounted = true
}

// Detach marks the element unmounted. Listeners stay registered.
func (e *Element) Detach() { e.mounted = false }

// Mounted reports whether a rectangle has been recorded since the last
// Detach.
func (e *Element) Mounted() bool { return e.mounted }

// Rect returns the last recorded rectangle.
func (e *Element) Rect() (geometry.Rect, error) {
	if !e.mounted {
		return geometry.Rect{}, ErrDetached
	}
	return e.rect, nil
}

// Listen registers fn for ev.
func (e *Element) Listen(ev tooltip.Event, fn func()) tooltip.Cleanup {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, &listener{id: id, ev: ev, fn: fn})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered listeners.
func (e *Element) Listeners() int { return len(e.listeners) }

// Emit delivers ev to the listeners registered when Emit is called.
func (e *Element) Emit(ev tooltip.Event) {
	var fns []func()
	for _, l := range e.listeners {
		if l.ev == ev {
			fns = append(fns, l.fn)
		}
	}
	for _, fn := range fns {
		fn()
	}
}

// SetPosition moves the element and forwards the position.
func (e *Element) SetPosition(p geometry.Point) {
	e.rect.X, e.rect.Y = p.X, p.Y
	if e.onPosition != nil {
		e.onPosition(p)
	}
}

// Page is a tooltip.Host made of a Loop and two Elements.
type Page struct {
	*Loop
	TriggerEl  *Element
	FloatingEl *Element
	View       geometry.Rect
}

var _ tooltip.Host = (*Page)(nil)

// Trigger returns TriggerEl once it is mounted.
func (p *Page) Trigger() tooltip.Element {
	if p.TriggerEl == nil || !p.TriggerEl.Mounted() {
		return nil
	}
	return p.TriggerEl
}

// Floating returns FloatingEl once it is mounted.
func (p *Page) Floating() tooltip.Element {
	if p.FloatingEl == nil || !p.FloatingEl.Mounted() {
		return nil
	}
	return p.FloatingEl
}

// Viewport returns View.
func (p *Page) Viewport() geometry.Rect { return p.View }
