// Package tooltip implements the hover-intent visibility and positioning
// controller behind a tooltip widget.
//
// A Controller owns everything one tooltip instance needs at runtime: the
// visibility flag and popup identifier, a single pending delayed hide, the
// listeners on the trigger and floating elements, and the tracking
// subscription that keeps the floating element positioned while it is shown.
// Rendering is left to the host, which supplies element handles, a render
// checkpoint and loop-bound timers through the Host interface.
//
// # Lifecycle
//
//	c := tooltip.New(host,
//	    tooltip.WithPlacement(geometry.PlacementBottomStart),
//	    tooltip.WithHoverDelay(150*time.Millisecond),
//	)
//	stop := c.OnNotify(func(n tooltip.Notification) {
//	    log.Println("tooltip", n)
//	})
//	defer stop()
//
//	c.Mount()         // attaches trigger listeners after the next render
//	...
//	c.Unmount()       // releases every listener, timer and subscription
//
// # States
//
//	Hidden ──enter trigger──▶ Showing ──render checkpoint──▶ Shown
//	  ▲                                                     │  ▲
//	  │                                 leave trigger/floating  enter floating
//	  │                                                     ▼  │
//	  └─────────────────timer fires──────────────────── PendingHide
//
// Hide and Unmount move to Hidden from any state.
//
// # Threading
//
// A Controller is not safe for concurrent use. All of its methods, and every
// callback it hands to the host, must run on the host's single event loop.
// Timers created through Host.AfterFunc must deliver their callback on that
// loop too; see package host for an implementation.
package tooltip
