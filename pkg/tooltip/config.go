package tooltip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

const (
	// DefaultPlacement is used when no placement is configured.
	DefaultPlacement = geometry.PlacementTop

	// DefaultOffset is the gap in pixels between trigger and floating element.
	DefaultOffset = 8.0

	// DefaultHoverDelay is how long a hide waits for the pointer to come back.
	DefaultHoverDelay = 100 * time.Millisecond

	// ShiftPadding keeps the floating element this many pixels away from
	// the viewport edges.
	ShiftPadding = 8.0
)

var (
	// ErrNegativeOffset reports an offset below zero.
	ErrNegativeOffset = errors.New("tooltip: offset must not be negative")

	// ErrNegativeHoverDelay reports a hover delay below zero.
	ErrNegativeHoverDelay = errors.New("tooltip: hover delay must not be negative")
)

// Config is the widget's configuration surface.
type Config struct {
	// Placement is the preferred side and alignment.
	Placement geometry.Placement

	// Offset is the gap in pixels along the placement's main axis.
	Offset float64

	// Disabled suppresses showing and skips trigger listeners.
	Disabled bool

	// ShowArrow is presentational; the controller only carries it.
	ShowArrow bool

	// HoverDelay is how long a pointer-leave waits before hiding.
	HoverDelay time.Duration

	// Content is presentational text passed through to the host.
	Content string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Placement:  DefaultPlacement,
		Offset:     DefaultOffset,
		ShowArrow:  true,
		HoverDelay: DefaultHoverDelay,
	}
}

// Validate reports every contract violation in c.
func (c Config) Validate() error {
	_, issues := c.Normalize()
	return errors.Join(issues...)
}

// Normalize clamps negative offset and delay to zero and replaces an
// unsupported placement with DefaultPlacement. It returns the corrected
// config and one error per correction.
func (c Config) Normalize() (Config, []error) {
	var issues []error
	if !c.Placement.Valid() {
		issues = append(issues, fmt.Errorf("%w: %q", geometry.ErrInvalidPlacement, c.Placement))
		c.Placement = DefaultPlacement
	}
	if c.Offset < 0 {
		issues = append(issues, fmt.Errorf("%w: %g", ErrNegativeOffset, c.Offset))
		c.Offset = 0
	}
	if c.HoverDelay < 0 {
		issues = append(issues, fmt.Errorf("%w: %s", ErrNegativeHoverDelay, c.HoverDelay))
		c.HoverDelay = 0
	}
	return c, issues
}

type settings struct {
	cfg         Config
	solver      geometry.Solver
	autoUpdater AutoUpdater
	logger      *slog.Logger
	ctx         context.Context
	id          string
}

// Option configures a Controller.
type Option func(*settings)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithPlacement sets the preferred placement.
func WithPlacement(p geometry.Placement) Option {
	return func(s *settings) {
		s.cfg.Placement = p
	}
}

// WithOffset sets the gap in pixels between trigger and floating element.
func WithOffset(px float64) Option {
	return func(s *settings) {
		s.cfg.Offset = px
	}
}

// WithDisabled starts the controller disabled.
func WithDisabled(disabled bool) Option {
	return func(s *settings) {
		s.cfg.Disabled = disabled
	}
}

// WithShowArrow sets the presentational arrow flag.
func WithShowArrow(show bool) Option {
	return func(s *settings) {
		s.cfg.ShowArrow = show
	}
}

// WithHoverDelay sets how long a pointer-leave waits before hiding.
func WithHoverDelay(d time.Duration) Option {
	return func(s *settings) {
		s.cfg.HoverDelay = d
	}
}

// WithContent sets the presentational text.
func WithContent(text string) Option {
	return func(s *settings) {
		s.cfg.Content = text
	}
}

// WithSolver replaces geometry.DefaultSolver.
func WithSolver(solver geometry.Solver) Option {
	return func(s *settings) {
		s.solver = solver
	}
}

// WithAutoUpdater sets the continuous tracking capability. Without it the
// host is used when it implements AutoUpdater.
func WithAutoUpdater(a AutoUpdater) Option {
	return func(s *settings) {
		s.autoUpdater = a
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithContext sets the context passed to the solver.
// Default: context.Background().
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		s.ctx = ctx
	}
}

// WithID overrides the generated popup identifier.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}
