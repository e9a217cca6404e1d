package tooltip

// Mount attaches the trigger listeners once the host's next render pass has
// completed. Nothing is attached while disabled.
func (c *Controller) Mount() {
	if c.disposed || c.mountRequested {
		return
	}
	c.mountRequested = true
	c.host.AfterRender(func() {
		if c.disposed {
			return
		}
		c.mountReady = true
		c.attachTrigger()
	})
}

// Unmount releases every listener, timer and tracking subscription from any
// state. The controller is unusable afterwards: every method becomes a
// no-op. No notification is emitted.
func (c *Controller) Unmount() {
	if c.disposed {
		return
	}

	c.releaseFloating()
	c.detachTrigger()
	c.phase = phaseHidden
	c.showGen++
	c.disposed = true
	c.notifier.reset()

	c.logger.Debug("tooltip unmounted")
}

// SetDisabled toggles the disabled flag at runtime. Disabling detaches the
// trigger listeners, drops a pending delayed hide and hides immediately.
// Enabling re-attaches the trigger listeners if the controller is mounted.
func (c *Controller) SetDisabled(disabled bool) {
	if c.disposed || c.cfg.Disabled == disabled {
		return
	}
	c.cfg.Disabled = disabled

	if disabled {
		c.detachTrigger()
		c.cancelPendingHide()
		c.Hide()
		return
	}
	if c.mountReady {
		c.attachTrigger()
	}
}

func (c *Controller) attachTrigger() {
	if c.cfg.Disabled || c.triggerListeners != nil {
		return
	}
	trigger := c.host.Trigger()
	if trigger == nil {
		c.logger.Warn("tooltip trigger not mounted")
		return
	}
	c.triggerListeners = []Cleanup{
		once(trigger.Listen(PointerEnter, c.RequestShow)),
		once(trigger.Listen(PointerLeave, c.RequestHideDelayed)),
	}
}

func (c *Controller) detachTrigger() {
	for _, stop := range c.triggerListeners {
		stop()
	}
	c.triggerListeners = nil
}

func (c *Controller) attachFloating() {
	if c.floatingListeners != nil {
		return
	}
	floating := c.host.Floating()
	if floating == nil {
		return
	}
	c.floatingListeners = []Cleanup{
		once(floating.Listen(PointerEnter, c.CancelPendingHide)),
		once(floating.Listen(PointerLeave, c.RequestHideDelayed)),
	}
}

func (c *Controller) detachFloating() {
	for _, stop := range c.floatingListeners {
		stop()
	}
	c.floatingListeners = nil
}

func (c *Controller) startTracking() {
	if c.tracking != nil || c.autoUpdater == nil {
		return
	}
	trigger, floating := c.host.Trigger(), c.host.Floating()
	if trigger == nil || floating == nil {
		return
	}
	c.tracking = once(c.autoUpdater.AutoUpdate(trigger, floating, func() {
		if c.phase == phaseHidden {
			return
		}
		c.UpdatePosition(c.ctx)
	}))
}

func (c *Controller) stopTracking() {
	if c.tracking == nil {
		return
	}
	c.tracking()
	c.tracking = nil
}
