package vtest

import (
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Clock is a virtual-time tooltip.Scheduler.
type Clock struct {
	now     time.Duration
	seq     uint64
	timers  []*timer
	renders []func()
}

type timer struct {
	clock *Clock
	due   time.Duration
	seq   uint64
	fn    func()
	done  bool
}

func (t *timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

var _ tooltip.Scheduler = (*Clock)(nil)

// NewClock returns a clock at t=0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }

// AfterFunc schedules fn at Now()+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) tooltip.Timer {
	c.seq++
	t := &timer{clock: c, due: c.now + max(d, 0), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// AfterRender queues fn until the next Render.
func (c *Clock) AfterRender(fn func()) {
	c.renders = append(c.renders, fn)
}

// Render completes a render pass: it runs the callbacks queued so far.
// Callbacks queued while rendering wait for the next pass. It returns the
// number of callbacks run.
func (c *Clock) Render() int {
	queued := c.renders
	c.renders = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// PendingRenders returns the number of queued render callbacks.
func (c *Clock) PendingRenders() int { return len(c.renders) }

// Pending returns the number of timers that have not fired or stopped.
func (c *Clock) Pending() int { return len(c.timers) }

// Advance moves the clock forward by d, firing due timers in deadline order.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.due
		next.done = true
		c.remove(next)
		next.fn()
	}
	c.now = target
}

func (c *Clock) nextDue(target time.Duration) *timer {
	var next *timer
	for _, t := range c.timers {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Clock) remove(t *timer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
			return
		}
	}
}
