// Package vtest provides test doubles for driving a tooltip.Controller
// deterministically.
//
// # Quick Start
//
//	func TestTooltip_ShowsOnHover(t *testing.T) {
//	    h := vtest.NewHost()
//	    c := tooltip.New(h, tooltip.WithAutoUpdater(h.Tracker))
//	    rec := vtest.NewRecorder(c, h.Clock)
//
//	    c.Mount()
//	    h.Render()                                  // render checkpoint
//	    h.TriggerEl.Fire(tooltip.PointerEnter)
//	    h.Render()
//
//	    if !rec.Has(tooltip.Shown) {
//	        t.Fatal("expected shown")
//	    }
//	}
//
// # Virtual Time
//
// Clock implements tooltip.Scheduler on virtual time. Timers only fire when
// Advance moves the clock past their deadline, and render callbacks only run
// on Render, so every interleaving is explicit in the test.
//
// # Counting Elements
//
// Element counts listener attach and detach calls, which makes leak checks
// one line:
//
//	if n := h.TriggerEl.ListenerCount(); n != 0 {
//	    t.Errorf("%d trigger listeners leaked", n)
//	}
package vtest
