package vtest

import (
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Record is one notification observed at a virtual time.
type Record struct {
	At   time.Duration
	Kind tooltip.Notification
}

// Recorder collects a controller's notifications.
type Recorder struct {
	Records []Record
	clock   *Clock
}

// NewRecorder subscribes to c, stamping records with clock's time.
func NewRecorder(c *tooltip.Controller, clock *Clock) *Recorder {
	r := &Recorder{clock: clock}
	c.OnNotify(func(n tooltip.Notification) {
		var at time.Duration
		if r.clock != nil {
			at = r.clock.Now()
		}
		r.Records = append(r.Records, Record{At: at, Kind: n})
	})
	return r
}

// Count returns how many notifications of kind were seen.
func (r *Recorder) Count(kind tooltip.Notification) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether kind was seen.
func (r *Recorder) Has(kind tooltip.Notification) bool { return r.Count(kind) > 0 }

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() { r.Records = nil }
