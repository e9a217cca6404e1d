package host

import (
	"sync"
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// DefaultPollInterval is used by NewPollingAutoUpdater for non-positive
// intervals.
const DefaultPollInterval = 100 * time.Millisecond

// PollingAutoUpdater tracks position by polling both elements' rectangles.
// Measurements run on the loop, so elements need no locking.
type PollingAutoUpdater struct {
	loop     Dispatcher
	interval time.Duration

	// Viewport, when set, is polled along with the elements.
	Viewport func() geometry.Rect
}

var _ tooltip.AutoUpdater = (*PollingAutoUpdater)(nil)

// NewPollingAutoUpdater polls every interval and dispatches onto loop.
func NewPollingAutoUpdater(loop Dispatcher, interval time.Duration) *PollingAutoUpdater {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollingAutoUpdater{loop: loop, interval: interval}
}

type snapshot struct {
	trigger, floating, viewport geometry.Rect
}

// AutoUpdate starts polling. onChange runs on the loop whenever a
// rectangle differs from the previous poll. The returned Cleanup must be
// called on the loop.
func (p *PollingAutoUpdater) AutoUpdate(trigger, floating tooltip.Element, onChange func()) tooltip.Cleanup {
	stop := make(chan struct{})
	var stopOnce sync.Once
	stopped := false

	measure := func() snapshot {
		var s snapshot
		s.trigger, _ = trigger.Rect()
		s.floating, _ = floating.Rect()
		if p.Viewport != nil {
			s.viewport = p.Viewport()
		}
		return s
	}
	last := measure()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.loop.Dispatch(func() {
					if stopped {
						return
					}
					cur := measure()
					// The floating element moves when onChange repositions
					// it; only its size counts as a layout change.
					if cur.trigger == last.trigger &&
						cur.floating.Size() == last.floating.Size() &&
						cur.viewport == last.viewport {
						return
					}
					onChange()
					last = measure()
				})
			case <-stop:
				return
			}
		}
	}()

	return func() {
		stopped = true
		stopOnce.Do(func() { close(stop) })
	}
}
