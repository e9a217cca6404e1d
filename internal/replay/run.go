package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vtest"
)

// Timeline entry kinds.
const (
	KindShow     = "show"
	KindHide     = "hide"
	KindPosition = "position"
)

// Entry is one observation.
type Entry struct {
	At       time.Duration
	Kind     string
	Position geometry.Result
}

func (e Entry) String() string {
	if e.Kind == KindPosition {
		return fmt.Sprintf("%8s  %-8s  (%g, %g) %s", e.At, e.Kind, e.Position.X, e.Position.Y, e.Position.Placement)
	}
	return fmt.Sprintf("%8s  %s", e.At, e.Kind)
}

// Timeline is the ordered result of a run.
type Timeline struct {
	Entries []Entry

	// Listeners, Timers and Tracking are the controller's resources when
	// the run ended.
	Listeners int
	Timers    int
	Tracking  int
}

// Count returns the number of entries of kind.
func (t *Timeline) Count(kind string) int {
	n := 0
	for _, e := range t.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// WriteTo prints one entry per line.
func (t *Timeline) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, e := range t.Entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Check compares the timeline against expectations and describes every
// mismatch.
func (t *Timeline) Check(expect []Expectation) []string {
	var problems []string
	for _, x := range expect {
		found := false
		for _, e := range t.Entries {
			if e.Kind != x.Kind {
				continue
			}
			if x.Never {
				found = true
				break
			}
			if e.At == x.At && (x.Placement == "" || e.Position.Placement == x.Placement) {
				found = true
				break
			}
		}
		switch {
		case x.Never && found:
			problems = append(problems, fmt.Sprintf("unexpected %s", x.Kind))
		case !x.Never && !found:
			want := x.Kind
			if x.Placement != "" {
				want += " " + string(x.Placement)
			}
			problems = append(problems, fmt.Sprintf("missing %s at %s", want, x.At))
		}
	}
	return problems
}

type options struct {
	solver geometry.Solver
	logger *slog.Logger
	wrap   func(tooltip.AutoUpdater) tooltip.AutoUpdater
}

// Option configures Run.
type Option func(*options)

// WithSolver replaces geometry.DefaultSolver.
func WithSolver(s geometry.Solver) Option {
	return func(o *options) {
		o.solver = s
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAutoUpdaterWrapper wraps the tracking capability, e.g. with
// telemetry.Metrics.AutoUpdater.
func WithAutoUpdaterWrapper(wrap func(tooltip.AutoUpdater) tooltip.AutoUpdater) Option {
	return func(o *options) {
		o.wrap = wrap
	}
}

// Run replays s on virtual time and returns what the controller did.
func Run(ctx context.Context, s *Script, opts ...Option) (*Timeline, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := options{solver: geometry.DefaultSolver, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	h := vtest.NewHost()
	if s.Viewport != nil {
		h.View = *s.Viewport
	}
	if s.Trigger != nil {
		h.TriggerEl.Box = *s.Trigger
	}
	if s.Floating != nil {
		h.FloatingEl.Box = *s.Floating
	}

	tl := &Timeline{}
	record := geometry.SolverFunc(func(ctx context.Context, req geometry.Request) (geometry.Result, error) {
		res, err := o.solver.Compute(ctx, req)
		if err == nil {
			tl.Entries = append(tl.Entries, Entry{At: h.Now(), Kind: KindPosition, Position: res})
		}
		return res, err
	})

	var tracker tooltip.AutoUpdater = h.Tracker
	if o.wrap != nil {
		tracker = o.wrap(tracker)
	}

	cfg := s.Config.Resolve()
	c := tooltip.New(h,
		tooltip.WithConfig(cfg),
		tooltip.WithSolver(record),
		tooltip.WithAutoUpdater(tracker),
		tooltip.WithLogger(o.logger),
		tooltip.WithContext(ctx),
		tooltip.WithID(tooltip.IDPrefix+"replay"),
	)
	c.OnNotify(func(n tooltip.Notification) {
		tl.Entries = append(tl.Entries, Entry{At: h.Now(), Kind: n.String()})
	})

	c.Mount()
	h.Render()

	for _, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return tl, err
		}
		h.Advance(step.At - h.Now())
		apply(h, c, step)
		h.Render()
	}

	until := s.Until
	if last := lastStep(s); until < last+c.Config().HoverDelay {
		until = last + c.Config().HoverDelay
	}
	if until > h.Now() {
		h.Advance(until - h.Now())
	}

	tl.Listeners = h.ListenerCount()
	tl.Timers = h.Pending()
	tl.Tracking = h.Tracker.Active()
	return tl, nil
}

func apply(h *vtest.Host, c *tooltip.Controller, step Step) {
	switch step.Event {
	case TriggerEnter:
		h.TriggerEl.Fire(tooltip.PointerEnter)
	case TriggerLeave:
		h.TriggerEl.Fire(tooltip.PointerLeave)
	case FloatingEnter:
		h.FloatingEl.Fire(tooltip.PointerEnter)
	case FloatingLeave:
		h.FloatingEl.Fire(tooltip.PointerLeave)
	case Show:
		c.Show()
	case Hide:
		c.Hide()
	case Unmount:
		c.Unmount()
	case Disable:
		c.SetDisabled(true)
	case Enable:
		c.SetDisabled(false)
	case Layout:
		if step.Trigger != nil {
			h.TriggerEl.Box = *step.Trigger
		}
		if step.Floating != nil {
			h.FloatingEl.Box.Width = step.Floating.Width
			h.FloatingEl.Box.Height = step.Floating.Height
		}
		h.Tracker.LayoutChanged()
	}
}

func lastStep(s *Script) time.Duration {
	if len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].At
}

