// Package host runs tooltip controllers on a real event loop.
//
// A Loop owns one goroutine. Every interaction with a controller, pointer
// events, timer callbacks and layout changes alike, is dispatched onto that
// goroutine, so the controller never needs locking:
//
//	loop := host.NewLoop(host.WithLogger(logger))
//	go loop.Run()
//	defer loop.Close()
//
//	loop.Dispatch(func() {
//	    c := tooltip.New(myHost, tooltip.WithAutoUpdater(
//	        host.NewPollingAutoUpdater(loop, 100*time.Millisecond)))
//	    c.Mount()
//	})
//
// After every dispatched function the loop flushes its render-checkpoint
// queue, which is what Loop.AfterRender feeds.
package host
