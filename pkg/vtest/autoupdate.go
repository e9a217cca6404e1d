package vtest

import "github.com/vango-dev/tooltip/pkg/tooltip"

// AutoUpdater is a tooltip.AutoUpdater whose layout changes are triggered by
// the test.
type AutoUpdater struct {
	subs    map[int]func()
	nextID  int
	started int
	stopped int
}

var _ tooltip.AutoUpdater = (*AutoUpdater)(nil)

// NewAutoUpdater returns an updater with no subscriptions.
func NewAutoUpdater() *AutoUpdater {
	return &AutoUpdater{subs: make(map[int]func())}
}

// AutoUpdate registers onChange until the returned Cleanup runs.
func (a *AutoUpdater) AutoUpdate(_, _ tooltip.Element, onChange func()) tooltip.Cleanup {
	a.nextID++
	id := a.nextID
	a.subs[id] = onChange
	a.started++
	return func() {
		if _, ok := a.subs[id]; ok {
			delete(a.subs, id)
			a.stopped++
		}
	}
}

// LayoutChanged invokes every active subscription.
func (a *AutoUpdater) LayoutChanged() {
	fns := make([]func(), 0, len(a.subs))
	for _, fn := range a.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

// Active returns the number of live subscriptions.
func (a *AutoUpdater) Active() int { return len(a.subs) }

// Started returns how many subscriptions were ever created.
func (a *AutoUpdater) Started() int { return a.started }

// Stopped returns how many subscriptions were torn down.
func (a *AutoUpdater) Stopped() int { return a.stopped }
