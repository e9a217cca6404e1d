package vtest

import (
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Default geometry used by NewHost.
var (
	DefaultViewport = geometry.Rect{Width: 1024, Height: 768}
	DefaultTrigger  = geometry.Rect{X: 462, Y: 364, Width: 100, Height: 40}
	DefaultFloating = geometry.Rect{Width: 120, Height: 32}
)

// Host is a tooltip.Host over fake elements and a virtual clock.
type Host struct {
	*Clock

	TriggerEl  *Element
	FloatingEl *Element
	View       geometry.Rect

	// Tracker is a fake tracking capability for tooltip.WithAutoUpdater.
	Tracker *AutoUpdater

	// LazyFloating keeps the floating element unmounted until the first
	// render after a show has been requested, like hosts that only render
	// the popup while visible.
	LazyFloating bool
	floatingOn   bool
}

var _ tooltip.Host = (*Host)(nil)

// NewHost returns a host with a centered trigger and a mounted floating
// element.
func NewHost() *Host {
	return &Host{
		Clock:      NewClock(),
		TriggerEl:  NewElement("trigger", DefaultTrigger),
		FloatingEl: NewElement("floating", DefaultFloating),
		View:       DefaultViewport,
		Tracker:    NewAutoUpdater(),
	}
}

// Trigger returns TriggerEl or nil.
func (h *Host) Trigger() tooltip.Element {
	if h.TriggerEl == nil {
		return nil
	}
	return h.TriggerEl
}

// Floating returns FloatingEl, nil when unset or not yet mounted.
func (h *Host) Floating() tooltip.Element {
	if h.FloatingEl == nil || (h.LazyFloating && !h.floatingOn) {
		return nil
	}
	return h.FloatingEl
}

// Viewport returns View.
func (h *Host) Viewport() geometry.Rect { return h.View }

// Render mounts a lazy floating element, then completes the render pass.
func (h *Host) Render() int {
	if h.LazyFloating {
		h.floatingOn = true
	}
	return h.Clock.Render()
}

// ListenerCount sums the listeners on both elements.
func (h *Host) ListenerCount() int {
	n := 0
	if h.TriggerEl != nil {
		n += h.TriggerEl.ListenerCount()
	}
	if h.FloatingEl != nil {
		n += h.FloatingEl.ListenerCount()
	}
	return n
}
