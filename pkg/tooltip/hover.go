package tooltip

import "time"

// RequestShow cancels a pending delayed hide and shows immediately. It is
// wired to pointer-enter on the trigger.
func (c *Controller) RequestShow() {
	if c.disposed {
		return
	}
	c.cancelPendingHide()
	c.Show()
}

// RequestHideDelayed schedules a hide after the configured hover delay,
// replacing any pending one. It is wired to pointer-leave on the trigger and
// on the floating element.
func (c *Controller) RequestHideDelayed() {
	c.requestHideDelayed(c.cfg.HoverDelay)
}

func (c *Controller) requestHideDelayed(delay time.Duration) {
	if c.disposed {
		return
	}
	c.cancelPendingHide()
	if c.phase == phaseHidden {
		return
	}

	c.hideSeq++
	seq := c.hideSeq
	c.pendingHide = c.host.AfterFunc(delay, func() {
		if c.pendingHide == nil || seq != c.hideSeq {
			return
		}
		c.pendingHide = nil
		c.Hide()
	})
}

// CancelPendingHide clears a pending delayed hide. It is wired to
// pointer-enter on the floating element.
func (c *Controller) CancelPendingHide() {
	if c.disposed {
		return
	}
	c.cancelPendingHide()
}

func (c *Controller) cancelPendingHide() {
	if c.pendingHide == nil {
		return
	}
	c.pendingHide.Stop()
	c.pendingHide = nil
	c.hideSeq++
}
