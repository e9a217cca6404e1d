package vtest

import (
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Element is a tooltip.Element that records every interaction.
type Element struct {
	Name string
	Box  geometry.Rect

	// Err, when set, is returned by Rect to simulate a detached element.
	Err error

	// Positions holds every SetPosition call in order.
	Positions []geometry.Point

	listeners []*listener
	nextID    int
	attached  int
	detached  int
}

type listener struct {
	id int
	ev tooltip.Event
	fn func()
}

var _ tooltip.Element = (*Element)(nil)

// NewElement returns an element with the given bounding box.
func NewElement(name string, box geometry.Rect) *Element {
	return &Element{Name: name, Box: box}
}

// Rect returns Box, or Err when set.
func (e *Element) Rect() (geometry.Rect, error) {
	if e.Err != nil {
		return geometry.Rect{}, e.Err
	}
	return e.Box, nil
}

// Listen attaches fn for ev.
func (e *Element) Listen(ev tooltip.Event, fn func()) tooltip.Cleanup {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, &listener{id: id, ev: ev, fn: fn})
	e.attached++
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				e.detached++
				return
			}
		}
	}
}

// SetPosition moves the element and records the position.
func (e *Element) SetPosition(p geometry.Point) {
	e.Box.X, e.Box.Y = p.X, p.Y
	e.Positions = append(e.Positions, p)
}

// Fire delivers ev to the listeners attached when Fire is called.
func (e *Element) Fire(ev tooltip.Event) {
	var targets []func()
	for _, l := range e.listeners {
		if l.ev == ev {
			targets = append(targets, l.fn)
		}
	}
	for _, fn := range targets {
		fn()
	}
}

// ListenerCount returns the number of attached listeners.
func (e *Element) ListenerCount() int { return len(e.listeners) }

// Attached returns how many listeners were ever attached.
func (e *Element) Attached() int { return e.attached }

// Detached returns how many listeners were detached.
func (e *Element) Detached() int { return e.detached }

// LastPosition returns the most recent SetPosition argument.
func (e *Element) LastPosition() (geometry.Point, bool) {
	if len(e.Positions) == 0 {
		return geometry.Point{}, false
	}
	return e.Positions[len(e.Positions)-1], true
}
